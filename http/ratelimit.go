package http

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound requests per host.
type Limiter interface {
	Wait(ctx context.Context, host string) error
}

var _ Limiter = (*DomainLimiter)(nil)

// DomainLimiter keeps a token bucket per host so storefront pages and their
// product feeds share one budget while different storefronts proceed
// independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host with the given burst (at least 1).
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Wait blocks until the host's bucket allows a request or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// waitFor applies l to the host of rawURL. A nil limiter never blocks.
func waitFor(ctx context.Context, l Limiter, rawURL string) error {
	if l == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return l.Wait(ctx, u.Hostname())
}
