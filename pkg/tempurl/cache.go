package tempurl

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// cachedURL is one cache entry. Entries are immutable once stored; a re-issue
// replaces the entry under the same key.
type cachedURL struct {
	url       string
	expiresAt int64 // unix seconds, parsed from the signer output
}

// URLCache is a process-wide mapping from object id to a previously issued
// signed URL. It is created empty at service start, never persisted, and
// cleared only by eviction or restart. Safe for concurrent use.
type URLCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]cachedURL
	metrics Metrics

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewURLCache creates an empty URL cache. A nil metrics falls back to
// NoopMetrics.
func NewURLCache(metrics Metrics) *URLCache {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &URLCache{
		entries: make(map[uuid.UUID]cachedURL),
		metrics: metrics,
	}
}

// Lookup returns the cached URL for an object if it remains usable past the
// horizon. An entry is usable only while expiresAt is strictly later than the
// horizon, so a URL that would expire before the caller starts the download
// is reported as a miss.
func (c *URLCache) Lookup(id uuid.UUID, horizon int64) (string, int64, bool) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok || entry.expiresAt <= horizon {
		c.misses.Add(1)
		c.metrics.Miss()
		return "", 0, false
	}
	c.hits.Add(1)
	c.metrics.Hit()
	return entry.url, entry.expiresAt, true
}

// Store inserts or replaces the entry for an object. Last writer wins.
func (c *URLCache) Store(id uuid.UUID, url string, expiresAt int64) {
	c.mu.Lock()
	c.entries[id] = cachedURL{url: url, expiresAt: expiresAt}
	size := len(c.entries)
	c.mu.Unlock()

	c.metrics.Size(size)
}

// Prune removes every entry that will expire before the horizon and returns
// the removed object ids.
func (c *URLCache) Prune(horizon int64) []uuid.UUID {
	c.mu.Lock()
	var removed []uuid.UUID
	for id, entry := range c.entries {
		if entry.expiresAt < horizon {
			delete(c.entries, id)
			removed = append(removed, id)
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	for range removed {
		c.evictions.Add(1)
		c.metrics.Evict()
	}
	c.metrics.Size(size)
	return removed
}

// Remove deletes the entry for an object, reporting whether one existed.
func (c *URLCache) Remove(id uuid.UUID) bool {
	c.mu.Lock()
	_, ok := c.entries[id]
	if ok {
		delete(c.entries, id)
	}
	size := len(c.entries)
	c.mu.Unlock()

	if ok {
		c.evictions.Add(1)
		c.metrics.Evict()
		c.metrics.Size(size)
	}
	return ok
}

// Clear drops all entries and returns how many were removed.
func (c *URLCache) Clear() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[uuid.UUID]cachedURL)
	c.mu.Unlock()

	c.evictions.Add(uint64(n))
	for i := 0; i < n; i++ {
		c.metrics.Evict()
	}
	c.metrics.Size(0)
	return n
}

// Len returns the number of resident entries.
func (c *URLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of the resident entries sorted by expiry.
func (c *URLCache) Snapshot() []CachedEntry {
	c.mu.RLock()
	entries := make([]CachedEntry, 0, len(c.entries))
	for id, entry := range c.entries {
		entries = append(entries, CachedEntry{
			ObjectID:  id,
			URL:       entry.url,
			ExpiresAt: time.Unix(entry.expiresAt, 0).UTC(),
		})
	}
	c.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ExpiresAt.Before(entries[j].ExpiresAt)
	})
	return entries
}

// Stats returns a point-in-time snapshot of the cache counters.
func (c *URLCache) Stats() CacheStats {
	c.mu.RLock()
	stats := CacheStats{
		Entries:   len(c.entries),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	for _, entry := range c.entries {
		expires := time.Unix(entry.expiresAt, 0).UTC()
		if stats.SoonestExpiry == nil || expires.Before(*stats.SoonestExpiry) {
			t := expires
			stats.SoonestExpiry = &t
		}
		if stats.LatestExpiry == nil || expires.After(*stats.LatestExpiry) {
			t := expires
			stats.LatestExpiry = &t
		}
	}
	c.mu.RUnlock()
	return stats
}
