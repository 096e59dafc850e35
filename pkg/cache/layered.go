package cache

import (
	"context"
	"time"
)

// LayeredCache reads through a fast in-memory layer before falling back to
// Redis, and writes through to both.
type LayeredCache struct {
	l1 *MemoryCache
	l2 *RedisCache
}

// NewLayeredCache combines a memory layer with a Redis layer.
func NewLayeredCache(l1 *MemoryCache, l2 *RedisCache) *LayeredCache {
	return &LayeredCache{l1: l1, l2: l2}
}

func (l *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := l.l2.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	// L1 keeps a shorter TTL so stale entries age out quickly.
	l1TTL := expiration
	if l1TTL > 5*time.Minute {
		l1TTL = 5 * time.Minute
	}
	return l.l1.Set(ctx, key, value, l1TTL)
}

func (l *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := l.l1.Get(ctx, key, dest); err == nil {
		return nil
	}
	if err := l.l2.Get(ctx, key, dest); err != nil {
		return err
	}
	_ = l.l1.Set(ctx, key, dest, 5*time.Minute)
	return nil
}

func (l *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	if err := l.l1.Delete(ctx, keys...); err != nil {
		return err
	}
	return l.l2.Delete(ctx, keys...)
}

func (l *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	if ok, err := l.l1.Exists(ctx, keys...); err == nil && ok {
		return true, nil
	}
	return l.l2.Exists(ctx, keys...)
}

// TryLock always goes to Redis so the lock is shared across instances.
func (l *LayeredCache) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.l2.TryLock(ctx, key, ttl)
}

func (l *LayeredCache) Unlock(ctx context.Context, key string) error {
	return l.l2.Unlock(ctx, key)
}

func (l *LayeredCache) Close() error {
	_ = l.l1.Close()
	return l.l2.Close()
}
