package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RamiObaid92/AIProjectTest/internal/resource"
)

// DefaultCacheTTL bounds how long a cached resource may go stale
const DefaultCacheTTL = 5 * time.Minute

// Cache is a Redis-backed read-through cache for Get-by-ID lookups.
// A cache failure never fails the request; callers fall back to the store.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewCache creates a resource cache on the given Redis client
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		prefix: "resource:",
	}
}

// Get retrieves a cached resource; the second return value is false on
// a miss or any cache error
func (c *Cache) Get(ctx context.Context, id string) (*resource.Resource, bool) {
	data, err := c.client.Get(ctx, c.prefix+id).Bytes()
	if err != nil {
		return nil, false
	}

	var r resource.Resource
	if err := json.Unmarshal(data, &r); err != nil {
		// A corrupt entry is dropped and treated as a miss
		c.client.Del(ctx, c.prefix+id)
		return nil, false
	}

	return &r, true
}

// Set stores a resource under its ID with the configured TTL
func (c *Cache) Set(ctx context.Context, r *resource.Resource) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode resource for cache: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+r.ID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache resource: %w", err)
	}

	return nil
}

// Invalidate removes a resource from the cache
func (c *Cache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.prefix+id).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to invalidate cached resource: %w", err)
	}
	return nil
}
