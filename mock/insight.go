package mock

import (
	"context"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of brandctx.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, websiteURL string) (*brandctx.Insight, error)
}

func (a *Analyzer) Analyze(ctx context.Context, websiteURL string) (*brandctx.Insight, error) {
	return a.AnalyzeFn(ctx, websiteURL)
}

var _ brandctx.InsightWriter = (*InsightWriter)(nil)

// InsightWriter is a mock implementation of brandctx.InsightWriter.
type InsightWriter struct {
	WriteInsightFn func(ctx context.Context, insight *brandctx.Insight) error
}

func (w *InsightWriter) WriteInsight(ctx context.Context, insight *brandctx.Insight) error {
	return w.WriteInsightFn(ctx, insight)
}

var _ brandctx.InsightService = (*InsightService)(nil)

// InsightService is a mock implementation of brandctx.InsightService.
type InsightService struct {
	WriteInsightFn    func(ctx context.Context, insight *brandctx.Insight) error
	FindInsightByIDFn func(ctx context.Context, id string) (*brandctx.Insight, error)
	FindInsightsFn    func(ctx context.Context, filter brandctx.InsightFilter) ([]*brandctx.Insight, error)
}

func (s *InsightService) WriteInsight(ctx context.Context, insight *brandctx.Insight) error {
	return s.WriteInsightFn(ctx, insight)
}

func (s *InsightService) FindInsightByID(ctx context.Context, id string) (*brandctx.Insight, error) {
	return s.FindInsightByIDFn(ctx, id)
}

func (s *InsightService) FindInsights(ctx context.Context, filter brandctx.InsightFilter) ([]*brandctx.Insight, error) {
	return s.FindInsightsFn(ctx, filter)
}

var _ brandctx.InsightCache = (*InsightCache)(nil)

// InsightCache is a mock implementation of brandctx.InsightCache.
type InsightCache struct {
	GetInsightFn func(ctx context.Context, websiteURL string) (*brandctx.Insight, error)
	SetInsightFn func(ctx context.Context, insight *brandctx.Insight) error
}

func (c *InsightCache) GetInsight(ctx context.Context, websiteURL string) (*brandctx.Insight, error) {
	return c.GetInsightFn(ctx, websiteURL)
}

func (c *InsightCache) SetInsight(ctx context.Context, insight *brandctx.Insight) error {
	return c.SetInsightFn(ctx, insight)
}
