// Package admin exposes operational views over the tempurl service: cache
// statistics, resident entries, and invalidation.
package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
)

// Service defines the admin operations over the URL cache
type Service interface {
	// CacheStatistics returns aggregated cache counters
	CacheStatistics(ctx context.Context) (*CacheStatistics, error)

	// ListCachedURLs returns the resident cache entries sorted by expiry
	ListCachedURLs(ctx context.Context) ([]CachedURLInfo, error)

	// InvalidateURL drops the cached URL for one object
	InvalidateURL(ctx context.Context, objectID uuid.UUID) (*InvalidateResult, error)

	// InvalidateAll drops every cached URL
	InvalidateAll(ctx context.Context) (*InvalidateResult, error)
}

type service struct {
	core tempurl.Service
}

// New creates an admin service over a tempurl service
func New(core tempurl.Service) Service {
	return &service{core: core}
}

func (s *service) CacheStatistics(ctx context.Context) (*CacheStatistics, error) {
	stats := s.core.CacheStats()
	return &CacheStatistics{
		Entries:       stats.Entries,
		Hits:          stats.Hits,
		Misses:        stats.Misses,
		Evictions:     stats.Evictions,
		SoonestExpiry: stats.SoonestExpiry,
		LatestExpiry:  stats.LatestExpiry,
	}, nil
}

func (s *service) ListCachedURLs(ctx context.Context) ([]CachedURLInfo, error) {
	entries := s.core.CachedEntries()
	infos := make([]CachedURLInfo, 0, len(entries))
	for _, entry := range entries {
		infos = append(infos, CachedURLInfo{
			ObjectID:  entry.ObjectID,
			URL:       entry.URL,
			ExpiresAt: entry.ExpiresAt,
		})
	}
	return infos, nil
}

func (s *service) InvalidateURL(ctx context.Context, objectID uuid.UUID) (*InvalidateResult, error) {
	removed := 0
	if s.core.Invalidate(ctx, objectID) {
		removed = 1
	}
	return &InvalidateResult{Removed: removed}, nil
}

func (s *service) InvalidateAll(ctx context.Context) (*InvalidateResult, error) {
	return &InvalidateResult{Removed: s.core.InvalidateAll(ctx)}, nil
}
