package dataprocessing

import (
	"sync"
	"time"
)

// loadCache is a bounded-time cache of load results keyed by URL. The
// source updates infrequently relative to the TTL, so staleness inside
// the window is acceptable. Owned exclusively by the Loader.
type loadCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	result  *LoadResult
	expires time.Time
}

func newLoadCache(ttl time.Duration) *loadCache {
	return &loadCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// get returns the cached result for url if still inside the TTL window.
func (c *loadCache) get(url string) (*LoadResult, bool) {
	if c.ttl == 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	if !ok || c.now().After(entry.expires) {
		delete(c.entries, url)
		return nil, false
	}
	return entry.result, true
}

func (c *loadCache) put(url string, result *LoadResult) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = cacheEntry{result: result, expires: c.now().Add(c.ttl)}
}
