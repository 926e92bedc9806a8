package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/brandctx"
)

// Ensure LoggingGenerator implements brandctx.Generator.
var _ brandctx.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging. Prompt and reply sizes
// are logged at info level, their contents at debug level.
type LoggingGenerator struct {
	next   brandctx.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next brandctx.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the exchange.
func (g *LoggingGenerator) Generate(ctx context.Context, req brandctx.GenerateRequest) (reply string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_chars", len(req.User),
			"reply_chars", len(reply),
			"max_tokens", req.MaxTokens,
			"duration", time.Since(begin),
			"err", err,
		)
		g.logger.Debug("generate exchange", "system", req.System, "reply", reply)
	}(time.Now())
	return g.next.Generate(ctx, req)
}
