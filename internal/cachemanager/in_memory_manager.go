package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/tagsearch/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

var _ CacheManager[string, int] = (*InMemoryCacheManager[string, int])(nil)

// NewInMemoryCacheManager creates a cache. useCase names it in log lines.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves an item by key.
func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		log.Debug(log.CatCache, "cache miss", "cache", c.useCase, "key", key)
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zero, false
	}

	log.Debug(log.CatCache, "cache hit", "cache", c.useCase, "key", key)
	return v, true
}

// GetMultiple returns the cached subset of keys. The boolean is false when
// none were cached.
func (c *InMemoryCacheManager[K, V]) GetMultiple(ctx context.Context, keys []K) (map[K]V, bool) {
	if len(keys) == 0 {
		return nil, false
	}

	values := make(map[K]V, len(keys))
	for _, key := range keys {
		if v, ok := c.Get(ctx, key); ok {
			values[key] = v
		}
	}
	if len(values) == 0 {
		return nil, false
	}
	if len(values) < len(keys) {
		log.Debug(log.CatCache, "partial cache miss", "cache", c.useCase, "hits", len(values), "keys", len(keys))
	}
	return values, true
}

// GetWithRefresh retrieves an item and, when found, extends its TTL.
func (c *InMemoryCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	value, found := c.Get(ctx, key)
	if !found {
		return value, false
	}
	c.Set(ctx, key, value, ttl)
	return value, true
}

// Set stores value under key for ttl.
func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes keys.
func (c *InMemoryCacheManager[K, V]) Delete(_ context.Context, keys ...K) error {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
	return nil
}

// Flush removes everything.
func (c *InMemoryCacheManager[K, V]) Flush(_ context.Context) error {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "cache", c.useCase)
	return nil
}

// ItemCount returns the number of cached items, including expired ones not
// yet cleaned up.
func (c *InMemoryCacheManager[K, V]) ItemCount() int {
	return c.cache.ItemCount()
}
