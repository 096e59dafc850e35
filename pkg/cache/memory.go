package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	raw      interface{}
	expireAt time.Time
}

func (m *memoryItem) expired() bool {
	return time.Now().After(m.expireAt)
}

// MemoryCache is an in-process cache with TTL and LRU eviction. It serves as
// the L1 layer and as the only layer when Redis is disabled.
type MemoryCache struct {
	data    map[string]*memoryItem
	access  map[string]time.Time
	mu      sync.Mutex
	maxSize int
	ticker  *time.Ticker
	done    chan struct{}
}

// MemoryOption configures MemoryCache.
type MemoryOption func(*MemoryCache)

// WithMemoryMaxSize sets the max entry count before LRU eviction.
func WithMemoryMaxSize(size int) MemoryOption {
	return func(mc *MemoryCache) { mc.maxSize = size }
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	mc := &MemoryCache{
		data:    make(map[string]*memoryItem),
		access:  make(map[string]time.Time),
		maxSize: 1000,
		ticker:  time.NewTicker(5 * time.Minute),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(mc)
	}
	go mc.cleanupLoop()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.data) >= mc.maxSize {
		mc.evictLRU()
	}

	expireAt := time.Now().Add(expiration)
	if expiration <= 0 {
		expireAt = time.Now().Add(24 * time.Hour)
	}

	b, err := marshalValue(value)
	if err != nil {
		return err
	}
	mc.data[key] = &memoryItem{value: b, raw: value, expireAt: expireAt}
	mc.access[key] = time.Now()
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	item, ok := mc.data[key]
	if !ok || item.expired() {
		if ok {
			delete(mc.data, key)
			delete(mc.access, key)
		}
		return ErrCacheMiss
	}
	mc.access[key] = time.Now()
	return unmarshalValue(item.value, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, k := range keys {
		delete(mc.data, k)
		delete(mc.access, k)
	}
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, k := range keys {
		if item, ok := mc.data[k]; !ok || item.expired() {
			return false, nil
		}
	}
	return true, nil
}

// TryLock acquires a best-effort in-process lock key.
func (mc *MemoryCache) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if item, ok := mc.data["lock:"+key]; ok && !item.expired() {
		return false, nil
	}
	mc.data["lock:"+key] = &memoryItem{expireAt: time.Now().Add(ttl)}
	return true, nil
}

func (mc *MemoryCache) Unlock(_ context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	delete(mc.data, "lock:"+key)
	return nil
}

func (mc *MemoryCache) Close() error {
	mc.ticker.Stop()
	close(mc.done)
	return nil
}

// evictLRU removes the least recently used entry; caller holds the lock.
func (mc *MemoryCache) evictLRU() {
	var oldest string
	var oldestAt time.Time
	for k, at := range mc.access {
		if oldest == "" || at.Before(oldestAt) {
			oldest, oldestAt = k, at
		}
	}
	if oldest != "" {
		delete(mc.data, oldest)
		delete(mc.access, oldest)
	}
}

func (mc *MemoryCache) cleanupLoop() {
	for {
		select {
		case <-mc.done:
			return
		case <-mc.ticker.C:
			mc.mu.Lock()
			for k, item := range mc.data {
				if item.expired() {
					delete(mc.data, k)
					delete(mc.access, k)
				}
			}
			mc.mu.Unlock()
		}
	}
}
