package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
)

func TestGetObject(t *testing.T) {
	ctx := context.Background()
	catalog := New()
	id := uuid.New()

	t.Run("unknown object", func(t *testing.T) {
		_, err := catalog.GetObject(ctx, id)
		assert.ErrorIs(t, err, tempurl.ErrObjectNotFound)
	})

	t.Run("stored object is returned", func(t *testing.T) {
		require.NoError(t, catalog.PutObject(ctx, &tempurl.ObjectInfo{
			ID:     id,
			Name:   "report.pdf",
			Size:   1024,
			Status: tempurl.ObjectStatusAvailable,
		}))

		info, err := catalog.GetObject(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, info.ID)
		assert.Equal(t, "report.pdf", info.Name)
		assert.Equal(t, int64(1024), info.Size)
		assert.False(t, info.CreatedAt.IsZero())
		assert.False(t, info.UpdatedAt.IsZero())
	})

	t.Run("returned copy is isolated", func(t *testing.T) {
		info, err := catalog.GetObject(ctx, id)
		require.NoError(t, err)

		info.Name = "mutated"

		again, err := catalog.GetObject(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", again.Name)
	})
}

func TestPutObjectReplaces(t *testing.T) {
	ctx := context.Background()
	catalog := New()
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
}

func TestDeleteObject(t *testing.T) {
	ctx := context.Background()
	catalog := New()
	id := uuid.New()

	require.NoError(t, catalog.PutObject(ctx, &tempurl.ObjectInfo{
		ID:     id,
		Status: tempurl.ObjectStatusAvailable,
	}))

	assert.NoError(t, catalog.DeleteObject(ctx, id))
	assert.ErrorIs(t, catalog.DeleteObject(ctx, id), tempurl.ErrObjectNotFound)

	_, err := catalog.GetObject(ctx, id)
	assert.ErrorIs(t, err, tempurl.ErrObjectNotFound)
}
