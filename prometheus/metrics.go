// Package prometheus exposes Prometheus metrics for HTTP requests and
// storefront analyses.
package prometheus

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/brandctx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	ExtractedItems      *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a fresh registry, so tests and
// multiple servers never collide on the global one.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandctx_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brandctx_http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandctx_analyses_total",
				Help: "Total number of storefront analyses by outcome.",
			},
			[]string{"status"},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brandctx_analysis_duration_seconds",
				Help:    "Duration of storefront analyses.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			},
		),
		ExtractedItems: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brandctx_extracted_items",
				Help:    "Number of items extracted per brand context field.",
				Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100, 250},
			},
			[]string{"field"},
		),
	}
	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.ExtractedItems,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and durations. The path label is the
// chi route pattern, so ids in URLs do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{r.Method, routePattern(r), strconv.Itoa(status)}
		m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Ensure InstrumentedAnalyzer implements brandctx.Analyzer.
var _ brandctx.Analyzer = (*InstrumentedAnalyzer)(nil)

// InstrumentedAnalyzer records analysis outcomes and extraction sizes.
type InstrumentedAnalyzer struct {
	next    brandctx.Analyzer
	metrics *Metrics
}

// NewInstrumentedAnalyzer wraps next with metrics.
func NewInstrumentedAnalyzer(next brandctx.Analyzer, metrics *Metrics) *InstrumentedAnalyzer {
	return &InstrumentedAnalyzer{next: next, metrics: metrics}
}

// Analyze delegates to the wrapped analyzer. The status label is "ok" on
// success and the error code otherwise.
func (a *InstrumentedAnalyzer) Analyze(ctx context.Context, websiteURL string) (*brandctx.Insight, error) {
	start := time.Now()
	insight, err := a.next.Analyze(ctx, websiteURL)
	a.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		a.metrics.AnalysesTotal.WithLabelValues(brandctx.ErrorCode(err)).Inc()
		return nil, err
	}
	a.metrics.AnalysesTotal.WithLabelValues("ok").Inc()

	if insight != nil && insight.Context != nil {
		bc := insight.Context
		for field, n := range map[string]int{
			"product_catalog": len(bc.ProductCatalog),
			"hero_products":   len(bc.HeroProducts),
			"brand_faqs":      len(bc.BrandFAQs),
			"social_handles":  len(bc.SocialHandles),
			"emails":          len(bc.ContactDetails.Emails),
			"phone_numbers":   len(bc.ContactDetails.PhoneNumbers),
			"important_links": len(bc.ImportantLinks),
		} {
			a.metrics.ExtractedItems.WithLabelValues(field).Observe(float64(n))
		}
	}
	return insight, nil
}
