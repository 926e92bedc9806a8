// Package http provides the HTTP boundary of brandctx: the page fetcher and
// product feed client used by the pipeline, and the API server that exposes it.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/fwojciec/brandctx"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 15 * time.Second

// MaxBodyBytes bounds the size of a fetched response body.
const MaxBodyBytes = 10 << 20

// DefaultUserAgent identifies brandctx to storefronts.
const DefaultUserAgent = "Mozilla/5.0 (compatible; brandctx/1.0)"

// Ensure Fetcher implements brandctx.Fetcher at compile time.
var _ brandctx.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	limiter   Limiter
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient replaces the underlying HTTP client. The fetcher's timeout is
// still applied per request.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithLimiter throttles requests per host.
func WithLimiter(l Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	body, err := get(ctx, f.client, f.limiter, f.timeout, f.userAgent, rawURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// get performs a GET request and classifies every failure as a brandctx.Error.
func get(ctx context.Context, client *http.Client, limiter Limiter, timeout time.Duration, userAgent, rawURL string) ([]byte, error) {
	target, ok := brandctx.AbsoluteURL(rawURL)
	if !ok {
		return nil, brandctx.Errorf(brandctx.EINVALID, "invalid URL %q: expected an absolute http(s) URL", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := waitFor(ctx, limiter, target); err != nil {
		return nil, classifyError(target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, brandctx.Errorf(brandctx.EINVALID, "invalid request for %s: %v", target, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyError(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, brandctx.UpstreamErrorf(resp.StatusCode, "%s for url: %s", resp.Status, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, classifyError(target, err)
	}
	return body, nil
}

// classifyError maps transport failures to application error codes.
func classifyError(target string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return brandctx.Errorf(brandctx.ETIMEOUT, "request to %s timed out", target)
	case isConnectionError(err):
		return brandctx.Errorf(brandctx.EUNAVAILABLE, "could not connect to %s: %v", target, err)
	default:
		return fmt.Errorf("request to %s: %w", target, err)
	}
}

func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	var opErr *net.OpError
	return errors.As(err, &dnsErr) ||
		errors.As(err, &opErr) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
