package mock

import (
	"context"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of brandctx.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ brandctx.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of brandctx.CatalogService.
type CatalogService struct {
	FetchCatalogFn func(ctx context.Context, baseURL string) ([]brandctx.Product, error)
}

func (s *CatalogService) FetchCatalog(ctx context.Context, baseURL string) ([]brandctx.Product, error) {
	return s.FetchCatalogFn(ctx, baseURL)
}
