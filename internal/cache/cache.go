package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// Keys used by the storefront read path. Writes to the catalog or to offers
// invalidate both.
const (
	KeyStorefront = "herbaldesk:storefront:products"
	KeyCategories = "herbaldesk:storefront:categories"
)

// DefaultTTL keeps storefront reads fresh enough that an offer flipping active
// shows up within a minute.
const DefaultTTL = time.Minute

// Cache is a thin JSON read-through cache over Redis. A nil *Cache is valid
// and turns every operation into a no-op, so callers never branch on whether
// caching is configured.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// FromEnv builds a Cache from REDIS_ADDR (and optional REDIS_PASSWORD,
// REDIS_DB ignored when unset). Returns nil when REDIS_ADDR is not set.
func FromEnv(ctx context.Context) (*Cache, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{rdb: rdb, ttl: DefaultTTL}, nil
}

// Get unmarshals the cached value for key into v, reporting whether a valid
// entry was found. Redis errors count as a miss.
func (c *Cache) Get(ctx context.Context, key string, v any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Set stores v under key for the cache TTL. Failures are ignored; the source
// of truth is the database.
func (c *Cache) Set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
