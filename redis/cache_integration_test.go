//go:build integration

package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(addr)
	defer client.Close()
	cache := redis.NewCache(client, time.Minute)
	ctx := context.Background()
	url := "https://integration.shop.test/" + time.Now().Format(time.RFC3339Nano)

	_, err := cache.GetInsight(ctx, url)
	require.Equal(t, brandctx.ENOTFOUND, brandctx.ErrorCode(err))

	bc := brandctx.NewBrandContext()
	bc.BrandTextContext = brandctx.String("We make soap.")
	require.NoError(t, cache.SetInsight(ctx, &brandctx.Insight{WebsiteURL: url, PageHash: "abc", Context: bc}))

	got, err := cache.GetInsight(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.PageHash)
	require.NotNil(t, got.Context.BrandTextContext)
	assert.Equal(t, "We make soap.", *got.Context.BrandTextContext)

	require.NoError(t, client.Del(ctx, redis.Key(url)).Err())
}
