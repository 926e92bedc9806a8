package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/brandctx"
)

// Compile-time interface verification.
var _ brandctx.Generator = (*CachingGenerator)(nil)

// CachingGenerator stores generator replies keyed by the full request so
// repeated analyses of an unchanged page skip the backend. Only successful
// replies are stored.
type CachingGenerator struct {
	db    *DB
	next  brandctx.Generator
	model string
	now   func() time.Time
}

// NewCachingGenerator wraps next. The model name is part of the cache key so
// replies from different backends never mix.
func NewCachingGenerator(db *DB, next brandctx.Generator, model string) *CachingGenerator {
	return &CachingGenerator{db: db, next: next, model: model, now: time.Now}
}

// GenerationKey returns the cache key for a request against model.
func GenerationKey(model string, req brandctx.GenerateRequest) string {
	d := xxhash.New()
	// Field separators keep ("ab","c") and ("a","bc") apart.
	fmt.Fprintf(d, "%s\x00%s\x00%s\x00%d", model, req.System, req.User, req.MaxTokens)
	return fmt.Sprintf("%016x", d.Sum64())
}

// Generate returns a stored reply when present and otherwise delegates.
func (g *CachingGenerator) Generate(ctx context.Context, req brandctx.GenerateRequest) (string, error) {
	key := GenerationKey(g.model, req)

	var reply string
	err := g.db.QueryRowContext(ctx, "SELECT reply FROM generations WHERE key = ?", key).Scan(&reply)
	switch {
	case err == nil:
		return reply, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", err
	}

	reply, err = g.next.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	_, err = g.db.ExecContext(ctx, `
		INSERT INTO generations (key, model, reply, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET reply = excluded.reply, created_at = excluded.created_at
	`, key, g.model, reply, formatTimestamp(g.now()))
	if err != nil {
		return "", err
	}

	return reply, nil
}
