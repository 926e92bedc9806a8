package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.Analyzer = (*Recorder)(nil)

// Recorder persists every successful analysis to its writers. A failed write
// is logged and never fails the analysis.
type Recorder struct {
	Analyzer brandctx.Analyzer
	Writers  []brandctx.InsightWriter
	Logger   *slog.Logger
}

// Analyze runs the wrapped analyzer and writes its result.
func (r *Recorder) Analyze(ctx context.Context, websiteURL string) (*brandctx.Insight, error) {
	insight, err := r.Analyzer.Analyze(ctx, websiteURL)
	if err != nil {
		return nil, err
	}
	for _, w := range r.Writers {
		if err := w.WriteInsight(ctx, insight); err != nil {
			r.logger().Warn("persist insight failed", "url", insight.WebsiteURL, "err", err)
		}
	}
	return insight, nil
}

func (r *Recorder) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
