package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache computes values with fn on a miss and caches them.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, input I) (V, error)
	shouldSkipCache bool
}

// NewReadThroughCache wraps cache. With shouldSkipCache every call runs fn.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

// Get returns the cached value for key or computes it from input.
// Errors are not cached.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}
	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}
	return r.fill(ctx, key, input, ttl)
}

// GetWithRefresh is Get that also extends the TTL of a hit.
func (r *ReadThroughCache[K, V, I]) GetWithRefresh(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}
	if value, ok := r.cache.GetWithRefresh(ctx, key, ttl); ok {
		return value, nil
	}
	return r.fill(ctx, key, input, ttl)
}

// Invalidate drops everything, e.g. after the terminal width changes.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context) error {
	return r.cache.Flush(ctx)
}

func (r *ReadThroughCache[K, V, I]) fill(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}
