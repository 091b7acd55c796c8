package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
	"github.com/vitrine-cms/vitrine/internal/db"
)

// SectionStore persists named single-document content records.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore returns the sqlite-backed section store.
func NewSectionStore(database *db.Database) *SectionStore {
	return &SectionStore{db: database.SQL()}
}

var _ ports.SectionStore = (*SectionStore)(nil)

// GetSection loads one section record by name.
func (s *SectionStore) GetSection(ctx context.Context, name string) (ports.Section, error) {
	var document string
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT document, updated_at FROM sections WHERE name = ?", name,
	).Scan(&document, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Section{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.Section{}, fmt.Errorf("get section %q: %w", name, err)
	}
	return ports.Section{
		Name:      name,
		Document:  json.RawMessage(document),
		UpdatedAt: parseTime(updatedAt),
	}, nil
}

// ReplaceSection upserts the whole document for one section.
func (s *SectionStore) ReplaceSection(ctx context.Context, name string, document json.RawMessage) (ports.Section, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sections (name, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		name, string(document), formatTime(now),
	)
	if err != nil {
		return ports.Section{}, fmt.Errorf("replace section %q: %w", name, err)
	}
	return ports.Section{Name: name, Document: document, UpdatedAt: now}, nil
}
