package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
)

// Catalog implements tempurl.Catalog using in-memory storage. Intended for
// tests and single-process deployments.
type Catalog struct {
	mu      sync.RWMutex
	objects map[uuid.UUID]*tempurl.ObjectInfo
}

// New creates a new in-memory catalog
func New() *Catalog {
	return &Catalog{
		objects: make(map[uuid.UUID]*tempurl.ObjectInfo),
	}
}

func (c *Catalog) GetObject(ctx context.Context, id uuid.UUID) (*tempurl.ObjectInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, exists := c.objects[id]
	if !exists {
		return nil, tempurl.ErrObjectNotFound
	}

	// Return a copy to prevent external modifications
	infoCopy := *info
	return &infoCopy, nil
}

// PutObject inserts or replaces a catalog entry
func (c *Catalog) PutObject(ctx context.Context, info *tempurl.ObjectInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	infoCopy := *info
	if infoCopy.CreatedAt.IsZero() {
		infoCopy.CreatedAt = time.Now().UTC()
	}
	infoCopy.UpdatedAt = time.Now().UTC()
	c.objects[info.ID] = &infoCopy

	return nil
}

// DeleteObject removes a catalog entry
func (c *Catalog) DeleteObject(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.objects[id]; !exists {
		return tempurl.ErrObjectNotFound
	}
	delete(c.objects, id)

	return nil
}
