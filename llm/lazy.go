package llm

import (
	"context"
	"sync"

	"github.com/fwojciec/brandctx"
)

// Backend is a Generator that holds resources until closed.
type Backend interface {
	brandctx.Generator
	Close() error
}

// InitFunc creates a Backend.
type InitFunc func(ctx context.Context) (Backend, error)

var _ brandctx.Generator = (*Lazy)(nil)

// Lazy defers creating a Backend until the first Generate call. A failed
// initialization is retried on the next call.
type Lazy struct {
	init InitFunc

	mu      sync.Mutex
	backend Backend
}

// NewLazy creates a Lazy generator using init to create its backend.
func NewLazy(init InitFunc) *Lazy {
	return &Lazy{init: init}
}

// Warm initializes the backend if it is not ready yet.
func (l *Lazy) Warm(ctx context.Context) error {
	_, err := l.get(ctx)
	return err
}

// Generate initializes the backend if needed and forwards the request.
func (l *Lazy) Generate(ctx context.Context, req brandctx.GenerateRequest) (string, error) {
	backend, err := l.get(ctx)
	if err != nil {
		return "", err
	}
	return backend.Generate(ctx, req)
}

// Close releases the backend if it was initialized.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.backend == nil {
		return nil
	}
	err := l.backend.Close()
	l.backend = nil
	return err
}

func (l *Lazy) get(ctx context.Context) (Backend, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.backend != nil {
		return l.backend, nil
	}
	backend, err := l.init(ctx)
	if err != nil {
		return nil, brandctx.Errorf(brandctx.EUNAVAILABLE, "generator initialization failed: %v", err)
	}
	l.backend = backend
	return backend, nil
}
