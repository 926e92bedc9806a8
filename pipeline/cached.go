package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.Analyzer = (*Cached)(nil)

// Cached serves recent insights from a cache. Cache failures are logged and
// treated as misses.
type Cached struct {
	Analyzer brandctx.Analyzer
	Cache    brandctx.InsightCache
	Logger   *slog.Logger
}

// Analyze returns the cached insight for websiteURL or runs the wrapped
// analyzer and caches its result.
func (c *Cached) Analyze(ctx context.Context, websiteURL string) (*brandctx.Insight, error) {
	key := websiteURL
	if abs, ok := brandctx.AbsoluteURL(websiteURL); ok {
		key = abs
	}

	insight, err := c.Cache.GetInsight(ctx, key)
	switch {
	case err == nil && insight != nil:
		return insight, nil
	case err != nil && brandctx.ErrorCode(err) != brandctx.ENOTFOUND:
		c.logger().Warn("insight cache read failed", "url", key, "err", err)
	}

	insight, err = c.Analyzer.Analyze(ctx, websiteURL)
	if err != nil {
		return nil, err
	}
	if err := c.Cache.SetInsight(ctx, insight); err != nil {
		c.logger().Warn("insight cache write failed", "url", key, "err", err)
	}
	return insight, nil
}

func (c *Cached) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
