package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCache(client, time.Minute)
}

func TestCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	r := testResource()

	_, hit := cache.Get(ctx, r.ID)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, r))

	cached, hit := cache.Get(ctx, r.ID)
	require.True(t, hit)
	assert.Equal(t, r.ID, cached.ID)
	assert.Equal(t, r.Payload, cached.Payload)
	require.NotNil(t, cached.SearchText)
	assert.Equal(t, *r.SearchText, *cached.SearchText)
}

func TestCache_Invalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	r := testResource()

	require.NoError(t, cache.Set(ctx, r))
	require.NoError(t, cache.Invalidate(ctx, r.ID))

	_, hit := cache.Get(ctx, r.ID)
	assert.False(t, hit)

	// Invalidating an absent key is not an error
	assert.NoError(t, cache.Invalidate(ctx, "missing"))
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "resource:bad", "not-json", time.Minute).Err())

	_, hit := cache.Get(ctx, "bad")
	assert.False(t, hit)
}
