package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process cache with per-entry TTLs. Cleanup is explicit:
// the owner decides when DeleteExpired runs (the pipeline drives it from its
// own sweep ticker), so no background janitor is started here.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL. Pass
// NoExpiration to keep entries until deleted.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	// Cleanup interval 0 disables go-cache's own janitor; expiry is still
	// enforced lazily on Get and eagerly via DeleteExpired.
	return &MemoryCache{cache: gocache.New(defaultTTL, 0)}
}

// Get retrieves a live value from the cache.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value with the given TTL (0 means the cache default).
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// DeleteExpired drops every entry whose deadline has passed. go-cache
// compares each entry's own expiry timestamp against the current time.
func (c *MemoryCache) DeleteExpired() {
	c.cache.DeleteExpired()
}

// Len returns the number of entries, expired ones included until a sweep.
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
