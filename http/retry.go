package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/brandctx"
)

// DefaultRetryDelays returns the backoff delays between page fetch attempts.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// Ensure RetryFetcher implements brandctx.Fetcher at compile time.
var _ brandctx.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries transient page fetch failures with backoff. One
// attempt is made per delay plus the initial one.
type RetryFetcher struct {
	next   brandctx.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher wraps next. A nil delays slice disables retries.
func NewRetryFetcher(next brandctx.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch calls the wrapped fetcher until it succeeds, fails permanently, or
// runs out of attempts. The last error is returned unchanged.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(f.delays) || !Retryable(err) {
			break
		}

		f.logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "err", err)

		select {
		case <-ctx.Done():
			return "", lastErr
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close releases the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}

// Retryable reports whether a fetch error is worth another attempt:
// connection failures, rate limiting and upstream server errors.
func Retryable(err error) bool {
	switch brandctx.ErrorCode(err) {
	case brandctx.EUNAVAILABLE:
		return true
	case brandctx.EUPSTREAM:
		status := brandctx.ErrorStatus(err)
		return status == http.StatusTooManyRequests || status >= 500
	}
	return false
}
