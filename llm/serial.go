package llm

import (
	"context"

	"github.com/fwojciec/brandctx"
	"golang.org/x/sync/semaphore"
)

var _ brandctx.Generator = (*Serial)(nil)

// Serial allows at most one in-flight request to the wrapped Generator.
type Serial struct {
	gen brandctx.Generator
	sem *semaphore.Weighted
}

// NewSerial wraps gen so concurrent callers take turns.
func NewSerial(gen brandctx.Generator) *Serial {
	return &Serial{gen: gen, sem: semaphore.NewWeighted(1)}
}

// Generate waits for its turn, or until ctx is done, then forwards the request.
func (s *Serial) Generate(ctx context.Context, req brandctx.GenerateRequest) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.sem.Release(1)
	return s.gen.Generate(ctx, req)
}
