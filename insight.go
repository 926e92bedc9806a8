package brandctx

import (
	"context"
	"time"
)

// Insight is the outcome of one pipeline run against a storefront.
type Insight struct {
	ID         string        `json:"id"`
	WebsiteURL string        `json:"website_url"`
	PageHash   string        `json:"page_hash"`
	Context    *BrandContext `json:"context"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Validate returns an error if the insight contains invalid fields.
func (i *Insight) Validate() error {
	if i.WebsiteURL == "" {
		return Errorf(EINVALID, "insight website URL required")
	}
	if i.Context == nil {
		return Errorf(EINVALID, "insight brand context required")
	}
	return nil
}

// Analyzer runs the extraction pipeline for one storefront.
type Analyzer interface {
	// Analyze fetches websiteURL and builds its BrandContext. Only a failure
	// to fetch the page itself is returned as an error.
	Analyze(ctx context.Context, websiteURL string) (*Insight, error)
}

// InsightWriter persists insights.
type InsightWriter interface {
	WriteInsight(ctx context.Context, insight *Insight) error
}

// InsightService represents a service for managing stored insights.
type InsightService interface {
	InsightWriter

	// FindInsightByID retrieves an insight by ID.
	// Returns ENOTFOUND if the insight does not exist.
	FindInsightByID(ctx context.Context, id string) (*Insight, error)

	// FindInsights retrieves insights matching the filter, newest first.
	FindInsights(ctx context.Context, filter InsightFilter) ([]*Insight, error)
}

// InsightFilter represents a filter for FindInsights.
type InsightFilter struct {
	ID         *string `json:"id"`
	WebsiteURL *string `json:"websiteUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// InsightCache caches recent insights by website URL.
type InsightCache interface {
	// GetInsight returns ENOTFOUND on a cache miss.
	GetInsight(ctx context.Context, websiteURL string) (*Insight, error)
	SetInsight(ctx context.Context, insight *Insight) error
}
