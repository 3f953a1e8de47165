package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// aisleCache is a read-through cache over the fuzzy aisle lookup, shared by
// the matcher (reads) and the category service (invalidation on mutation).
// Redis is optional: with a nil client every operation is a no-op, so the
// service runs correctly without it. Entries expire by TTL; mutations also
// evict the exact key for the changed category text, which covers the common
// case of the user correcting the row they just looked at. Substring-overlap
// staleness is bounded by the TTL.
type aisleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAisleCache(rdb *redis.Client, ttl time.Duration) *aisleCache {
	return &aisleCache{rdb: rdb, ttl: ttl}
}

func cacheKey(fragment string) string {
	return "aisle:" + strings.ToLower(strings.TrimSpace(fragment))
}

func (c *aisleCache) Get(ctx context.Context, fragment string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, cacheKey(fragment)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *aisleCache) Set(ctx context.Context, fragment, aisle string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, cacheKey(fragment), aisle, c.ttl)
}

func (c *aisleCache) Invalidate(ctx context.Context, category string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, cacheKey(category))
}
