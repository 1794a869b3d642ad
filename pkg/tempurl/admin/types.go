package admin

import (
	"time"

	"github.com/google/uuid"
)

// CacheStatistics provides aggregated statistics about the URL cache
type CacheStatistics struct {
	Entries       int        `json:"entries"`
	Hits          uint64     `json:"hits"`
	Misses        uint64     `json:"misses"`
	Evictions     uint64     `json:"evictions"`
	SoonestExpiry *time.Time `json:"soonest_expiry,omitempty"`
	LatestExpiry  *time.Time `json:"latest_expiry,omitempty"`
}

// CachedURLInfo describes one resident cache entry
type CachedURLInfo struct {
	ObjectID  uuid.UUID `json:"object_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InvalidateResult reports the outcome of an invalidation
type InvalidateResult struct {
	Removed int `json:"removed"`
}
