package store

import (
	"context"
	"database/sql"

	"renotrack/internal/apperr"
	"renotrack/internal/domain"
)

// PhotoStore is the catalog of stored photo blobs: which slot each belongs
// to, the generated on-disk filename, and when it was uploaded. Bytes live in
// the blob store; this is metadata only.
type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

func (s *PhotoStore) Insert(ctx context.Context, slotID, filename, originalName string) (*domain.Photo, error) {
	// uploaded_at is assigned DB-side at millisecond precision; ordering ties
	// within the same millisecond fall back to the rowid.
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (slot_id, filename, original_name, uploaded_at)
		VALUES (?, ?, ?, strftime('%Y-%m-%d %H:%M:%f', 'now'))
	`, slotID, filename, originalName)
	if err != nil {
		return nil, apperr.Store("failed to insert photo", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, apperr.Store("failed to get last insert id", err)
	}

	return s.GetByID(ctx, id)
}

func (s *PhotoStore) GetByID(ctx context.Context, id int64) (*domain.Photo, error) {
	photo := &domain.Photo{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, slot_id, filename, original_name, uploaded_at FROM photos WHERE id = ?
	`, id).Scan(&photo.ID, &photo.SlotID, &photo.Filename, &photo.OriginalName, &photo.UploadedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store("failed to get photo", err)
	}

	return photo, nil
}

// ListBySlot returns a slot's photos oldest first, the order used by the
// archive exporter.
func (s *PhotoStore) ListBySlot(ctx context.Context, slotID string) ([]*domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slot_id, filename, original_name, uploaded_at FROM photos
		WHERE slot_id = ? ORDER BY uploaded_at ASC, id ASC
	`, slotID)
	if err != nil {
		return nil, apperr.Store("failed to list photos", err)
	}
	defer rows.Close()

	return scanPhotos(rows)
}

// ListGroupedBySlot groups every photo by slot, newest first within each
// group. A single ordered scan is regrouped in memory; there is no per-slot
// query.
func (s *PhotoStore) ListGroupedBySlot(ctx context.Context) (map[string][]*domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slot_id, filename, original_name, uploaded_at FROM photos
		ORDER BY uploaded_at DESC, id DESC
	`)
	if err != nil {
		return nil, apperr.Store("failed to list photos", err)
	}
	defer rows.Close()

	photos, err := scanPhotos(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*domain.Photo)
	for _, p := range photos {
		grouped[p.SlotID] = append(grouped[p.SlotID], p)
	}
	return grouped, nil
}

func (s *PhotoStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return apperr.Store("failed to delete photo", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Store("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("photo not found")
	}
	return nil
}

func scanPhotos(rows *sql.Rows) ([]*domain.Photo, error) {
	var photos []*domain.Photo
	for rows.Next() {
		photo := &domain.Photo{}
		if err := rows.Scan(&photo.ID, &photo.SlotID, &photo.Filename, &photo.OriginalName, &photo.UploadedAt); err != nil {
			return nil, apperr.Store("failed to scan photo", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("error iterating photos", err)
	}
	return photos, nil
}
