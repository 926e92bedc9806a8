// Package redis caches insights in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/brandctx"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a cached insight stays valid.
const DefaultTTL = time.Hour

const insightKeyPrefix = "insight:"

// Compile-time interface verification.
var _ brandctx.InsightCache = (*Cache)(nil)

// Cache implements brandctx.InsightCache on top of a Redis client.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache creates a Cache. A non-positive ttl uses DefaultTTL.
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// NewClient connects to the Redis server at addr.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Key returns the Redis key an insight for websiteURL is stored under.
func Key(websiteURL string) string {
	return fmt.Sprintf("%s%016x", insightKeyPrefix, xxhash.Sum64String(websiteURL))
}

// GetInsight returns the cached insight for websiteURL or ENOTFOUND.
func (c *Cache) GetInsight(ctx context.Context, websiteURL string) (*brandctx.Insight, error) {
	data, err := c.client.Get(ctx, Key(websiteURL)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, brandctx.Errorf(brandctx.ENOTFOUND, "no cached insight for %s", websiteURL)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	insight := &brandctx.Insight{Context: brandctx.NewBrandContext()}
	if err := json.Unmarshal(data, insight); err != nil {
		return nil, fmt.Errorf("decode cached insight: %w", err)
	}
	return insight, nil
}

// SetInsight stores insight under its website URL for the configured TTL.
func (c *Cache) SetInsight(ctx context.Context, insight *brandctx.Insight) error {
	if err := insight.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(insight)
	if err != nil {
		return fmt.Errorf("encode insight: %w", err)
	}
	if err := c.client.Set(ctx, Key(insight.WebsiteURL), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
