// Package rod fetches JavaScript-rendered storefront pages with a headless
// Chrome browser.
package rod

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/brandctx"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements brandctx.Fetcher at compile time.
var _ brandctx.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browsers     *Browsers
	fetchTimeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// NewFetcher creates a Fetcher that renders pages in browsers. The Fetcher
// takes ownership of browsers and closes them on Close.
func NewFetcher(browsers *Browsers, opts ...Option) *Fetcher {
	f := &Fetcher{browsers: browsers, fetchTimeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, ok := brandctx.AbsoluteURL(rawURL)
	if !ok {
		return "", brandctx.Errorf(brandctx.EINVALID, "invalid URL %q: expected an absolute http(s) URL", rawURL)
	}
	if err := ctx.Err(); err != nil {
		return "", ClassifyError(err)
	}

	browser, release, err := f.browsers.Acquire()
	if err != nil {
		return "", err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", ClassifyError(err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(target); err != nil {
		return "", ClassifyError(err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", ClassifyError(err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", ClassifyError(err)
	}
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browsers.Close()
}

// ClassifyError maps browser and navigation failures onto error codes.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return brandctx.Errorf(brandctx.ETIMEOUT, "page render timed out")
	}
	var navErr *rod.NavigationError
	if errors.As(err, &navErr) {
		reason := navErr.Reason
		switch {
		case strings.Contains(reason, "TIMED_OUT"):
			return brandctx.Errorf(brandctx.ETIMEOUT, "navigation failed: %s", reason)
		case strings.Contains(reason, "NAME_NOT_RESOLVED"),
			strings.Contains(reason, "CONNECTION_"),
			strings.Contains(reason, "ADDRESS_UNREACHABLE"),
			strings.Contains(reason, "INTERNET_DISCONNECTED"):
			return brandctx.Errorf(brandctx.EUNAVAILABLE, "navigation failed: %s", reason)
		}
		return fmt.Errorf("navigation failed: %w", err)
	}
	return fmt.Errorf("render page: %w", err)
}
