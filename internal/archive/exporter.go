// Package archive streams a slot's stored photos into a single zip. The
// exporter writes to any io.Writer sink, so it is testable without a live
// HTTP response.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"

	"renotrack/internal/apperr"
	"renotrack/internal/blobstore"
	"renotrack/internal/domain"
	"renotrack/internal/naming"
	"renotrack/internal/normalize"
)

// photoCatalog is the subset of store.PhotoStore the exporter requires.
type photoCatalog interface {
	ListBySlot(ctx context.Context, slotID string) ([]*domain.Photo, error)
}

type Exporter struct {
	catalog photoCatalog
	blobs   blobstore.BlobStore
	names   *naming.Table
	logger  *slog.Logger
}

func NewExporter(catalog photoCatalog, blobs blobstore.BlobStore, names *naming.Table, logger *slog.Logger) *Exporter {
	return &Exporter{catalog: catalog, blobs: blobs, names: names, logger: logger}
}

// ArchiveName returns the download filename for slotID's archive.
func (e *Exporter) ArchiveName(slotID string) string {
	return e.names.ArchiveName(slotID)
}

// ExportSlot writes a zip of the slot's photos to w, oldest first, each entry
// renamed to <label>-photo-<n>.jpg. A catalog entry whose blob has gone
// missing is skipped rather than failing the export. The not-found case for
// an empty slot is reported before a single byte reaches w, so callers can
// still send a clean 404.
func (e *Exporter) ExportSlot(ctx context.Context, slotID string, w io.Writer) error {
	photos, err := e.catalog.ListBySlot(ctx, slotID)
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		return apperr.NotFound("no photos for slot " + slotID)
	}

	label := e.names.SlotLabel(slotID)
	zw := zip.NewWriter(w)

	index := 0
	for _, photo := range photos {
		if err := ctx.Err(); err != nil {
			return apperr.Archive("export cancelled", err)
		}
		if !e.blobs.Exists(ctx, photo.Filename) {
			e.logger.Warn("skipping photo with missing blob",
				"photo_id", photo.ID, "slot_id", slotID, "filename", photo.Filename)
			continue
		}

		blob, err := e.blobs.Open(ctx, photo.Filename)
		if err != nil {
			return apperr.Archive("failed to open blob", err)
		}

		index++
		header := &zip.FileHeader{
			Name:     fmt.Sprintf("%s-photo-%d%s", label, index, normalize.StoredExt),
			Method:   zip.Deflate,
			Modified: photo.UploadedAt,
		}
		entry, err := zw.CreateHeader(header)
		if err != nil {
			_ = blob.Close()
			return apperr.Archive("failed to create archive entry", err)
		}
		if _, err := io.Copy(entry, blob); err != nil {
			_ = blob.Close()
			return apperr.Archive("failed to write archive entry", err)
		}
		if err := blob.Close(); err != nil {
			e.logger.Warn("failed to close blob after archiving", "filename", photo.Filename, "error", err)
		}
	}

	if err := zw.Close(); err != nil {
		return apperr.Archive("failed to finalize archive", err)
	}
	return nil
}
