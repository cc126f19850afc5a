package cache

import (
	"sync"
	"time"
)

// TTLCache is a concurrency-safe map with per-entry expiry. It memoizes
// derived values only: expired entries are never served, a miss always falls
// through to recomputation, and entries are never merged across writes, so
// the cache cannot affect correctness.
type TTLCache[V any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]entry[V]
	nowFn func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewTTLCache creates a cache whose entries expire after ttl
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		ttl:   ttl,
		items: make(map[string]entry[V]),
		nowFn: time.Now,
	}
}

// WithClock overrides the clock, for deterministic expiry in tests.
func (c *TTLCache[V]) WithClock(now func() time.Time) *TTLCache[V] {
	c.nowFn = now
	return c
}

// Get returns the cached value for key if present and not expired
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || c.nowFn().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with a fresh TTL
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[V]{
		value:     value,
		expiresAt: c.nowFn().Add(c.ttl),
	}
}

// Invalidate drops the entry for key, if any
func (c *TTLCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Sweep evicts expired entries and returns how many were removed
func (c *TTLCache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFn()
	removed := 0
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, including expired but not yet swept ones
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
