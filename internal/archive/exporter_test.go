package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renotrack/internal/apperr"
	"renotrack/internal/blobstore/local"
	"renotrack/internal/db"
	"renotrack/internal/naming"
	"renotrack/internal/store"
)

func newExporterFixture(t *testing.T) (*Exporter, *store.PhotoStore, *local.LocalBlobStore) {
	t.Helper()
	database, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	blobs, err := local.NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)

	catalog := store.NewPhotoStore(database)
	exporter := NewExporter(catalog, blobs, naming.Default(), slog.Default())
	return exporter, catalog, blobs
}

func addPhoto(t *testing.T, catalog *store.PhotoStore, blobs *local.LocalBlobStore, slotID, filename string, content []byte) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, blobs.Write(ctx, filename, content))
	_, err := catalog.Insert(ctx, slotID, filename, "orig.jpg")
	require.NoError(t, err)
}

func readEntries(t *testing.T, archive []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	entries := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = data
	}
	return entries
}

func TestExportSlotCompleteArchive(t *testing.T) {
	exporter, catalog, blobs := newExporterFixture(t)

	addPhoto(t, catalog, blobs, "p1-dishwasher-latch", "p1-a.jpg", []byte("first"))
	addPhoto(t, catalog, blobs, "p1-dishwasher-latch", "p1-b.jpg", []byte("second"))
	addPhoto(t, catalog, blobs, "p1-dishwasher-latch", "p1-c.jpg", []byte("third"))

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportSlot(context.Background(), "p1-dishwasher-latch", &buf))

	entries := readEntries(t, buf.Bytes())
	require.Len(t, entries, 3)
	// Entries are named by ascending upload order, 1-based.
	assert.Equal(t, []byte("first"), entries["dishwasher-latch-photo-1.jpg"])
	assert.Equal(t, []byte("second"), entries["dishwasher-latch-photo-2.jpg"])
	assert.Equal(t, []byte("third"), entries["dishwasher-latch-photo-3.jpg"])
}

func TestExportSlotUnknownSlotUsesRawID(t *testing.T) {
	exporter, catalog, blobs := newExporterFixture(t)

	addPhoto(t, catalog, blobs, "p9-mystery", "p9-a.jpg", []byte("data"))

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportSlot(context.Background(), "p9-mystery", &buf))

	entries := readEntries(t, buf.Bytes())
	require.Len(t, entries, 1)
	assert.Contains(t, entries, "p9-mystery-photo-1.jpg")
}

func TestExportSlotEmptyIsNotFound(t *testing.T) {
	exporter, _, _ := newExporterFixture(t)

	var buf bytes.Buffer
	err := exporter.ExportSlot(context.Background(), "nonexistent-slot", &buf)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Zero(t, buf.Len(), "nothing may be written before the not-found check")
}

func TestExportSlotSkipsMissingBlobs(t *testing.T) {
	exporter, catalog, blobs := newExporterFixture(t)
	ctx := context.Background()

	addPhoto(t, catalog, blobs, "p1-backsplash", "p1-keep.jpg", []byte("keep"))
	addPhoto(t, catalog, blobs, "p1-backsplash", "p1-lost.jpg", []byte("lost"))
	addPhoto(t, catalog, blobs, "p1-backsplash", "p1-also.jpg", []byte("also"))

	// Simulate an orphaned catalog row.
	require.NoError(t, blobs.Delete(ctx, "p1-lost.jpg"))

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportSlot(ctx, "p1-backsplash", &buf))

	entries := readEntries(t, buf.Bytes())
	require.Len(t, entries, 2)
	// Indexes stay contiguous across the skipped entry.
	assert.Equal(t, []byte("keep"), entries["backsplash-photo-1.jpg"])
	assert.Equal(t, []byte("also"), entries["backsplash-photo-2.jpg"])
}

func TestExportSlotArchiveNames(t *testing.T) {
	exporter, _, _ := newExporterFixture(t)

	assert.Equal(t, "kitchen-photos.zip", exporter.ArchiveName("p1-backsplash"))
	assert.Equal(t, "renovation-photos.zip", exporter.ArchiveName("unknown-slot"))
}
