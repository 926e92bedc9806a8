package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/brandctx"
)

// Ensure LoggingCatalogService implements brandctx.CatalogService.
var _ brandctx.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with logging.
type LoggingCatalogService struct {
	next   brandctx.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next brandctx.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// FetchCatalog delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) FetchCatalog(ctx context.Context, baseURL string) (products []brandctx.Product, err error) {
	defer func(begin time.Time) {
		s.logger.Info("product catalog",
			"url", baseURL,
			"count", len(products),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchCatalog(ctx, baseURL)
}
