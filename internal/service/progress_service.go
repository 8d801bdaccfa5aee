package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"renotrack/internal/apperr"
	"renotrack/internal/blobstore"
	"renotrack/internal/domain"
	"renotrack/internal/normalize"
)

// recordRepository is the subset of store.RecordStore that ProgressService requires.
type recordRepository interface {
	SetChecked(ctx context.Context, id string, checked bool) error
	Checklist(ctx context.Context) (map[string]bool, error)
	SetNote(ctx context.Context, id, content string) error
	Notes(ctx context.Context) (map[string]string, error)
	SetStatus(ctx context.Context, id, status string) error
	Statuses(ctx context.Context) (map[string]string, error)
}

// photoRepository is the subset of store.PhotoStore that ProgressService requires.
type photoRepository interface {
	Insert(ctx context.Context, slotID, filename, originalName string) (*domain.Photo, error)
	GetByID(ctx context.Context, id int64) (*domain.Photo, error)
	ListGroupedBySlot(ctx context.Context) (map[string][]*domain.Photo, error)
	Delete(ctx context.Context, id int64) error
}

// slotExporter is the archive exporter surface the service re-exposes to the
// transport layer.
type slotExporter interface {
	ExportSlot(ctx context.Context, slotID string, w io.Writer) error
	ArchiveName(slotID string) string
}

type ProgressService struct {
	records  recordRepository
	photos   photoRepository
	blobs    blobstore.BlobStore
	exporter slotExporter
	logger   *slog.Logger
}

func NewProgressService(
	records recordRepository,
	photos photoRepository,
	blobs blobstore.BlobStore,
	exporter slotExporter,
	logger *slog.Logger,
) *ProgressService {
	return &ProgressService{
		records:  records,
		photos:   photos,
		blobs:    blobs,
		exporter: exporter,
		logger:   logger,
	}
}

func (s *ProgressService) SetChecklistItem(ctx context.Context, id string, checked bool) error {
	return s.records.SetChecked(ctx, id, checked)
}

func (s *ProgressService) SetNote(ctx context.Context, id, content string) error {
	return s.records.SetNote(ctx, id, content)
}

func (s *ProgressService) SetStatus(ctx context.Context, id, status string) error {
	return s.records.SetStatus(ctx, id, status)
}

// Snapshot composes the three record domains and the grouped photo catalog
// into one consolidated view. Nothing is cached; each call reflects current
// store state.
func (s *ProgressService) Snapshot(ctx context.Context) (*domain.ProgressSnapshot, error) {
	snapshot := &domain.ProgressSnapshot{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot.Checklist, err = s.records.Checklist(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Notes, err = s.records.Notes(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Statuses, err = s.records.Statuses(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.PhotosBySlot, err = s.photos.ListGroupedBySlot(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// UploadPhoto validates and normalizes the raw upload, writes the normalized
// bytes to the blob store, then records the catalog row. If the catalog
// insert fails the blob is removed again so no unreachable file is left
// behind.
func (s *ProgressService) UploadPhoto(ctx context.Context, slotID, originalName, declaredType string, raw []byte) (*domain.Photo, error) {
	s.logger.Info("upload photo started",
		"slot_id", slotID, "declared_type", declaredType, "bytes", len(raw))

	if err := normalize.CheckUpload(declaredType, int64(len(raw))); err != nil {
		return nil, err
	}

	normalized, err := normalize.Normalize(raw)
	if err != nil {
		return nil, err
	}

	filename := storedFilename(slotID)
	if err := s.blobs.Write(ctx, filename, normalized); err != nil {
		return nil, apperr.Store("failed to store photo", err)
	}

	photo, err := s.photos.Insert(ctx, slotID, filename, originalName)
	if err != nil {
		if derr := s.blobs.Delete(ctx, filename); derr != nil {
			s.logger.Error("failed to remove blob after catalog insert error",
				"filename", filename, "error", derr)
		}
		return nil, err
	}

	s.logger.Info("upload photo complete",
		"slot_id", slotID, "photo_id", photo.ID, "filename", photo.Filename)
	return photo, nil
}

// DeletePhoto removes a photo from both layers: blob first (a missing blob is
// fine), catalog row second. A crash between the two leaves an orphaned row
// that heals on the next delete attempt.
func (s *ProgressService) DeletePhoto(ctx context.Context, id int64) error {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if photo == nil {
		return apperr.NotFound("photo not found")
	}

	if err := s.blobs.Delete(ctx, photo.Filename); err != nil {
		return apperr.Store("failed to delete photo blob", err)
	}

	return s.photos.Delete(ctx, id)
}

func (s *ProgressService) ExportSlot(ctx context.Context, slotID string, w io.Writer) error {
	return s.exporter.ExportSlot(ctx, slotID, w)
}

func (s *ProgressService) ArchiveName(slotID string) string {
	return s.exporter.ArchiveName(slotID)
}

// storedFilename derives the on-disk name from the slot and ingest time. The
// uuid fragment keeps two uploads within the same millisecond from colliding.
func storedFilename(slotID string) string {
	return fmt.Sprintf("%s-%d-%s%s",
		slotID, time.Now().UnixMilli(), uuid.NewString()[:8], normalize.StoredExt)
}
