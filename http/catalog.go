package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/brandctx"
)

// DefaultCatalogTimeout bounds the product feed request.
const DefaultCatalogTimeout = 10 * time.Second

// CatalogPath is the storefront's structured product feed.
const CatalogPath = "/products.json"

var _ brandctx.CatalogService = (*CatalogService)(nil)

// CatalogService reads a storefront's /products.json feed.
type CatalogService struct {
	client    *http.Client
	parser    brandctx.Parser
	timeout   time.Duration
	limiter   Limiter
	userAgent string
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithCatalogTimeout sets the feed request timeout.
func WithCatalogTimeout(d time.Duration) CatalogOption {
	return func(s *CatalogService) {
		s.timeout = d
	}
}

// WithCatalogClient replaces the underlying HTTP client.
func WithCatalogClient(c *http.Client) CatalogOption {
	return func(s *CatalogService) {
		s.client = c
	}
}

// WithCatalogLimiter throttles feed requests per host.
func WithCatalogLimiter(l Limiter) CatalogOption {
	return func(s *CatalogService) {
		s.limiter = l
	}
}

// NewCatalogService creates a CatalogService. parser strips markup from
// product descriptions.
func NewCatalogService(parser brandctx.Parser, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		client:    &http.Client{},
		parser:    parser,
		timeout:   DefaultCatalogTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CatalogURL returns the product feed URL for a storefront.
func CatalogURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + CatalogPath
}

// FetchCatalog returns every product in the feed. A feed without a products
// key is an empty catalog, not an error.
func (s *CatalogService) FetchCatalog(ctx context.Context, baseURL string) ([]brandctx.Product, error) {
	products := []brandctx.Product{}

	body, err := get(ctx, s.client, s.limiter, s.timeout, s.userAgent, CatalogURL(baseURL))
	if err != nil {
		return products, err
	}

	var feed map[string]json.RawMessage
	if err := json.Unmarshal(body, &feed); err != nil {
		return products, brandctx.Errorf(brandctx.EINVALID, "product feed is not a JSON object: %v", err)
	}
	raw, ok := feed["products"]
	if !ok {
		return products, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return products, brandctx.Errorf(brandctx.EINVALID, "product feed products is not a list: %v", err)
	}

	for _, entry := range entries {
		var fields map[string]any
		dec := json.NewDecoder(bytes.NewReader(entry))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil || fields == nil {
			continue
		}
		products = append(products, s.product(fields))
	}
	return products, nil
}

func (s *CatalogService) product(fields map[string]any) brandctx.Product {
	p := brandctx.Product{Title: brandctx.UntitledProduct}
	if title, ok := fields["title"].(string); ok && strings.TrimSpace(title) != "" {
		p.Title = strings.TrimSpace(title)
	}

	if body, ok := fields["body_html"].(string); ok && strings.TrimSpace(body) != "" && s.parser != nil {
		p.Description = brandctx.String(s.parser.Parse(body).Text())
	}

	if variants, ok := fields["variants"].([]any); ok && len(variants) > 0 {
		if variant, ok := variants[0].(map[string]any); ok {
			p.Price = priceText(variant["price"])
		}
	}

	if images, ok := fields["images"].([]any); ok && len(images) > 0 {
		if image, ok := images[0].(map[string]any); ok {
			if src, ok := image["src"].(string); ok {
				if abs, ok := brandctx.AbsoluteURL(src); ok {
					p.ImageSrc = &abs
				}
			}
		}
	}
	return p
}

// priceText renders a feed price, which storefronts encode as either a
// string or a number.
func priceText(v any) *string {
	switch price := v.(type) {
	case string:
		return brandctx.String(strings.TrimSpace(price))
	case json.Number:
		return brandctx.String(price.String())
	default:
		return nil
	}
}
