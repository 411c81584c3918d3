package pipeline

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ppiankov/credence/internal/cache"
	"github.com/ppiankov/credence/internal/model"
)

// ResultCache holds finished evaluations keyed by (responseID, validation
// level) for a bounded window. It is an explicit service: the sweep cadence
// and TTL are injected, and Start/Stop control the background cleanup so
// tests can drive expiry deterministically.
type ResultCache struct {
	mem      *cache.MemoryCache
	ttl      time.Duration
	interval time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// NewResultCache creates a result cache with the given TTL and sweep cadence.
func NewResultCache(ttl, cleanupInterval time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	return &ResultCache{
		mem:      cache.NewMemoryCache(ttl),
		ttl:      ttl,
		interval: cleanupInterval,
		done:     make(chan struct{}),
	}
}

// Start launches the periodic sweep.
func (c *ResultCache) Start() {
	c.startOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(c.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					c.Sweep()
				case <-c.done:
					return
				}
			}
		}()
	})
}

// Stop halts the periodic sweep.
func (c *ResultCache) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// Sweep removes expired entries immediately. The comparison is the entry's
// own insertion deadline against the current time.
func (c *ResultCache) Sweep() {
	c.mem.DeleteExpired()
}

// Get returns the cached evaluation for the key, if still inside its TTL.
func (c *ResultCache) Get(responseID string, level model.ValidationLevel) (*model.AggregateResult, bool) {
	raw, found := c.mem.Get(resultKey(responseID, level))
	if !found {
		return nil, false
	}
	var result model.AggregateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		_ = c.mem.Delete(resultKey(responseID, level))
		return nil, false
	}
	return &result, true
}

// Put stores an evaluation under its response id and level.
func (c *ResultCache) Put(result *model.AggregateResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = c.mem.Set(resultKey(result.Meta.ResponseID, result.Meta.ValidationLevel), raw, c.ttl)
}

// Len reports the number of entries, expired ones included until a sweep.
func (c *ResultCache) Len() int {
	return c.mem.Len()
}

func resultKey(responseID string, level model.ValidationLevel) string {
	return cache.Key(responseID + "|" + string(level))
}
