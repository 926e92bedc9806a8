package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/brandctx"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ brandctx.InsightService = (*InsightService)(nil)

// InsightService implements brandctx.InsightService using SQLite.
type InsightService struct {
	db  *DB
	now func() time.Time
}

// NewInsightService creates a new InsightService.
func NewInsightService(db *DB) *InsightService {
	return &InsightService{db: db, now: time.Now}
}

// WriteInsight stores a new insight. A fresh ID is always assigned; the
// creation time is kept when set and defaults to now otherwise.
func (s *InsightService) WriteInsight(ctx context.Context, insight *brandctx.Insight) error {
	if err := insight.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(insight.Context)
	if err != nil {
		return fmt.Errorf("failed to encode brand context: %w", err)
	}

	insight.ID = uuid.New().String()
	if insight.CreatedAt.IsZero() {
		insight.CreatedAt = s.now()
	}
	insight.CreatedAt = insight.CreatedAt.UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO insights (id, website_url, page_hash, context, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, insight.ID, insight.WebsiteURL, insight.PageHash, string(data), formatTimestamp(insight.CreatedAt))

	return err
}

// FindInsightByID retrieves an insight by ID.
func (s *InsightService) FindInsightByID(ctx context.Context, id string) (*brandctx.Insight, error) {
	insights, err := s.FindInsights(ctx, brandctx.InsightFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(insights) == 0 {
		return nil, brandctx.Errorf(brandctx.ENOTFOUND, "insight not found")
	}
	return insights[0], nil
}

// FindInsights retrieves insights matching the filter, newest first.
func (s *InsightService) FindInsights(ctx context.Context, filter brandctx.InsightFilter) ([]*brandctx.Insight, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, website_url, page_hash, context, created_at FROM insights WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.WebsiteURL != nil {
		query.WriteString(" AND website_url = ?")
		args = append(args, *filter.WebsiteURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	insights := []*brandctx.Insight{}
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}

	return insights, rows.Err()
}

func scanInsight(rows *sql.Rows) (*brandctx.Insight, error) {
	var insight brandctx.Insight
	var data, createdAt string

	if err := rows.Scan(&insight.ID, &insight.WebsiteURL, &insight.PageHash, &data, &createdAt); err != nil {
		return nil, err
	}

	bc := brandctx.NewBrandContext()
	if err := json.Unmarshal([]byte(data), bc); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to decode brand context for insight %s", insight.ID), err)
	}
	insight.Context = bc

	var err error
	insight.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &insight, nil
}
