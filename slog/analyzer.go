package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/brandctx"
)

// Ensure LoggingAnalyzer implements brandctx.Analyzer.
var _ brandctx.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging.
type LoggingAnalyzer struct {
	next   brandctx.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next brandctx.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs a summary of the result.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, websiteURL string) (insight *brandctx.Insight, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", websiteURL,
			"duration", time.Since(begin),
		}
		if insight != nil && insight.Context != nil {
			bc := insight.Context
			attrs = append(attrs,
				"page_hash", insight.PageHash,
				"products", len(bc.ProductCatalog),
				"hero", len(bc.HeroProducts),
				"faqs", len(bc.BrandFAQs),
				"links", len(bc.ImportantLinks),
				"social", len(bc.SocialHandles),
			)
		}
		if err != nil {
			attrs = append(attrs, "code", brandctx.ErrorCode(err), "err", err)
			a.logger.Error("analyze", attrs...)
			return
		}
		a.logger.Info("analyze", attrs...)
	}(time.Now())
	return a.next.Analyze(ctx, websiteURL)
}
