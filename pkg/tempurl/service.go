package tempurl

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-tempurl library
type Service interface {
	// IssueDownloadURL returns a signed download URL for an object, reusing
	// a cached URL while it remains usable
	IssueDownloadURL(ctx context.Context, req IssueURLRequest) (*IssuedURL, error)

	// GetObjectInfo retrieves the catalog entry for an object
	GetObjectInfo(ctx context.Context, id uuid.UUID) (*ObjectInfo, error)

	// ResolveContainer returns the container an object id maps to
	ResolveContainer(objectID string) string

	// Cache operations
	Invalidate(ctx context.Context, id uuid.UUID) bool
	InvalidateAll(ctx context.Context) int
	CachedEntries() []CachedEntry
	CacheStats() CacheStats
}
