package brandctx

import "context"

// Fetcher retrieves raw markup from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch returns the page body. Failures are classified by error code:
	// EINVALID for a malformed URL, EUNAVAILABLE for connection failures,
	// ETIMEOUT for timeouts, EUPSTREAM (with Status) for HTTP errors and
	// EINTERNAL otherwise.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// CatalogService reads a storefront's structured product feed.
type CatalogService interface {
	// FetchCatalog returns the products listed by the feed derived from
	// baseURL. It always returns a non-nil slice; a non-nil error reports why
	// the slice is empty and is never fatal to a pipeline run.
	FetchCatalog(ctx context.Context, baseURL string) ([]Product, error)
}
