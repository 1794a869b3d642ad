//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
)

func TestPostgresCatalog(t *testing.T) {
	db := NewTestDB(t)
	db.Setup(t)
	defer db.Teardown(t)

	ctx := context.Background()
	catalog := NewWithPool(db.Pool)

	t.Run("unknown object", func(t *testing.T) {
		_, err := catalog.GetObject(ctx, uuid.New())
		assert.ErrorIs(t, err, tempurl.ErrObjectNotFound)
	})

	t.Run("put and get round trip", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, catalog.PutObject(ctx, &tempurl.ObjectInfo{
			ID:       id,
			Name:     "report.pdf",
			Checksum: "sha256:abc",
			Size:     2048,
			Status:   tempurl.ObjectStatusAvailable,
		}))

		info, err := catalog.GetObject(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, info.ID)
		assert.Equal(t, "report.pdf", info.Name)
		assert.Equal(t, "sha256:abc", info.Checksum)
		assert.Equal(t, int64(2048), info.Size)
		assert.Equal(t, tempurl.ObjectStatusAvailable, info.Status)
		assert.False(t, info.CreatedAt.IsZero())
	})

	t.Run("put replaces on conflict", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, catalog.PutObject(ctx, &tempurl.ObjectInfo{
			ID:     id,
			Status: tempurl.ObjectStatusUploading,
		}))
		require.NoError(t, catalog.PutObject(ctx, &tempurl.ObjectInfo{
			ID:     id,
			Status: tempurl.ObjectStatusAvailable,
		}))

		info, err := catalog.GetObject(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, tempurl.ObjectStatusAvailable, info.Status)
	})

	t.Run("soft delete hides the object", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, catalog.PutObject(ctx, &tempurl.ObjectInfo{
			ID:     id,
			Status: tempurl.ObjectStatusAvailable,
		}))

		require.NoError(t, catalog.DeleteObject(ctx, id))

		_, err := catalog.GetObject(ctx, id)
		assert.ErrorIs(t, err, tempurl.ErrObjectNotFound)

		assert.ErrorIs(t, catalog.DeleteObject(ctx, id), tempurl.ErrObjectNotFound)
	})
}
