package store

import (
	"context"
	"database/sql"

	"renotrack/internal/apperr"
)

// RecordStore persists the three keyed record domains: checklist booleans,
// note text, and status labels. Writes are single-statement upserts, so
// concurrent callers on the same id never produce duplicate rows.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) SetChecked(ctx context.Context, id string, checked bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklist (id, checked, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET checked = excluded.checked, updated_at = excluded.updated_at
	`, id, checked)
	if err != nil {
		return apperr.Store("failed to upsert checklist item", err)
	}
	return nil
}

func (s *RecordStore) Checklist(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, checked FROM checklist`)
	if err != nil {
		return nil, apperr.Store("failed to list checklist", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var id string
		var checked bool
		if err := rows.Scan(&id, &checked); err != nil {
			return nil, apperr.Store("failed to scan checklist item", err)
		}
		result[id] = checked
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("error iterating checklist", err)
	}
	return result, nil
}

func (s *RecordStore) SetNote(ctx context.Context, id, content string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, content, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
	`, id, content)
	if err != nil {
		return apperr.Store("failed to upsert note", err)
	}
	return nil
}

func (s *RecordStore) Notes(ctx context.Context) (map[string]string, error) {
	return s.textDomain(ctx, `SELECT id, content FROM notes`, "notes")
}

func (s *RecordStore) SetStatus(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO status (id, status, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at
	`, id, status)
	if err != nil {
		return apperr.Store("failed to upsert status", err)
	}
	return nil
}

func (s *RecordStore) Statuses(ctx context.Context) (map[string]string, error) {
	return s.textDomain(ctx, `SELECT id, status FROM status`, "status")
}

// textDomain runs a two-column (id, value) scan shared by the string-valued
// domains.
func (s *RecordStore) textDomain(ctx context.Context, query, domain string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperr.Store("failed to list "+domain, err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var id, value string
		if err := rows.Scan(&id, &value); err != nil {
			return nil, apperr.Store("failed to scan "+domain+" row", err)
		}
		result[id] = value
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("error iterating "+domain, err)
	}
	return result, nil
}
