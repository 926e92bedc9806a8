package mock

import (
	"context"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.Generator = (*Generator)(nil)

// Generator is a mock implementation of brandctx.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, req brandctx.GenerateRequest) (string, error)
	CloseFn    func() error
}

func (g *Generator) Generate(ctx context.Context, req brandctx.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}

// Close calls CloseFn when set so the mock can also stand in for
// closable backends.
func (g *Generator) Close() error {
	if g.CloseFn == nil {
		return nil
	}
	return g.CloseFn()
}
