package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renotrack/internal/apperr"
)

func TestPhotoStoreInsert(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	photo, err := photos.Insert(ctx, "p1-dishwasher-latch", "p1-dishwasher-latch-1700000000000-a1b2c3d4.jpg", "IMG_0042.HEIC")
	require.NoError(t, err)
	assert.NotZero(t, photo.ID)
	assert.Equal(t, "p1-dishwasher-latch", photo.SlotID)
	assert.Equal(t, "IMG_0042.HEIC", photo.OriginalName)
	assert.False(t, photo.UploadedAt.IsZero())
}

func TestPhotoStoreListBySlotAscending(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		p, err := photos.Insert(ctx, "p1", fmt.Sprintf("p1-%d.jpg", i), "orig.jpg")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	_, err := photos.Insert(ctx, "p2", "p2-0.jpg", "other.jpg")
	require.NoError(t, err)

	listed, err := photos.ListBySlot(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, p := range listed {
		assert.Equal(t, ids[i], p.ID, "oldest first")
		assert.Equal(t, "p1", p.SlotID)
	}
}

func TestPhotoStoreListGroupedBySlotDescending(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	first, err := photos.Insert(ctx, "p1", "p1-0.jpg", "a.jpg")
	require.NoError(t, err)
	second, err := photos.Insert(ctx, "p1", "p1-1.jpg", "b.jpg")
	require.NoError(t, err)
	_, err = photos.Insert(ctx, "p2", "p2-0.jpg", "c.jpg")
	require.NoError(t, err)

	grouped, err := photos.ListGroupedBySlot(ctx)
	require.NoError(t, err)
	require.Len(t, grouped, 2)
	require.Len(t, grouped["p1"], 2)
	assert.Equal(t, second.ID, grouped["p1"][0].ID, "newest first within a group")
	assert.Equal(t, first.ID, grouped["p1"][1].ID)
	assert.Len(t, grouped["p2"], 1)
}

func TestPhotoStoreGetByIDMissing(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))

	photo, err := photos.GetByID(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, photo)
}

func TestPhotoStoreDelete(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	photo, err := photos.Insert(ctx, "p1", "p1-del.jpg", "del.jpg")
	require.NoError(t, err)

	require.NoError(t, photos.Delete(ctx, photo.ID))

	retrieved, err := photos.GetByID(ctx, photo.ID)
	require.NoError(t, err)
	assert.Nil(t, retrieved)
}

func TestPhotoStoreDeleteNotFound(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))

	err := photos.Delete(context.Background(), 99999)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPhotoStoreFilenameUnique(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	_, err := photos.Insert(ctx, "p1", "dup.jpg", "a.jpg")
	require.NoError(t, err)

	_, err = photos.Insert(ctx, "p1", "dup.jpg", "b.jpg")
	require.Error(t, err)
	assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
}
