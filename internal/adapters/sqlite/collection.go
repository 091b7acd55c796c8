package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
	"github.com/vitrine-cms/vitrine/internal/db"
)

// CollectionStore persists one ordered collection. Gallery images and
// portfolio items share the same shape and discipline and differ only in
// their backing table.
type CollectionStore struct {
	db    *sql.DB
	table string
}

// NewGalleryStore returns the ordered store for gallery images.
func NewGalleryStore(database *db.Database) *CollectionStore {
	return &CollectionStore{db: database.SQL(), table: "gallery_images"}
}

// NewPortfolioStore returns the ordered store for portfolio items.
func NewPortfolioStore(database *db.Database) *CollectionStore {
	return &CollectionStore{db: database.SQL(), table: "portfolio_items"}
}

var _ ports.OrderedCollectionStore = (*CollectionStore)(nil)

const collectionColumns = "id, position, title, caption, category, image_path, link_url, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (ports.OrderedItem, error) {
	var item ports.OrderedItem
	var createdAt, updatedAt string
	err := row.Scan(
		&item.ID,
		&item.Position,
		&item.Title,
		&item.Caption,
		&item.Category,
		&item.ImagePath,
		&item.LinkURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return ports.OrderedItem{}, err
	}
	item.CreatedAt = parseTime(createdAt)
	item.UpdatedAt = parseTime(updatedAt)
	return item, nil
}

// List returns all live items sorted ascending by position.
func (s *CollectionStore) List(ctx context.Context) ([]ports.OrderedItem, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY position ASC", collectionColumns, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}
	defer rows.Close()

	items := []ports.OrderedItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", s.table, err)
	}
	return items, nil
}

// Append inserts a new item at position count+1. The count and the insert
// run in one transaction so concurrent appends cannot assign the same
// position.
func (s *CollectionStore) Append(ctx context.Context, fields ports.OrderedItemFields) (ports.OrderedItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ports.OrderedItem{}, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var count int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)
	if err := tx.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return ports.OrderedItem{}, fmt.Errorf("count %s: %w", s.table, err)
	}

	now := time.Now().UTC()
	item := ports.OrderedItem{
		ID:        uuid.NewString(),
		Position:  count + 1,
		Title:     fields.Title,
		Caption:   fields.Caption,
		Category:  fields.Category,
		ImagePath: fields.ImagePath,
		LinkURL:   fields.LinkURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", s.table, collectionColumns)
	_, err = tx.ExecContext(ctx, insert,
		item.ID, item.Position, item.Title, item.Caption, item.Category,
		item.ImagePath, item.LinkURL, formatTime(now), formatTime(now),
	)
	if err != nil {
		return ports.OrderedItem{}, fmt.Errorf("insert %s: %w", s.table, err)
	}

	if err := tx.Commit(); err != nil {
		return ports.OrderedItem{}, fmt.Errorf("commit append: %w", err)
	}
	return item, nil
}

// Update merges the non-nil patch fields into the item. Identity and
// position are never touched here.
func (s *CollectionStore) Update(ctx context.Context, id string, patch ports.OrderedItemPatch) (ports.OrderedItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ports.OrderedItem{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	item, err := s.getItemTx(ctx, tx, id)
	if err != nil {
		return ports.OrderedItem{}, err
	}

	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Caption != nil {
		item.Caption = *patch.Caption
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.ImagePath != nil {
		item.ImagePath = *patch.ImagePath
	}
	if patch.LinkURL != nil {
		item.LinkURL = *patch.LinkURL
	}
	item.UpdatedAt = time.Now().UTC()

	update := fmt.Sprintf(
		"UPDATE %s SET title = ?, caption = ?, category = ?, image_path = ?, link_url = ?, updated_at = ? WHERE id = ?",
		s.table,
	)
	_, err = tx.ExecContext(ctx, update,
		item.Title, item.Caption, item.Category, item.ImagePath, item.LinkURL,
		formatTime(item.UpdatedAt), id,
	)
	if err != nil {
		return ports.OrderedItem{}, fmt.Errorf("update %s: %w", s.table, err)
	}

	if err := tx.Commit(); err != nil {
		return ports.OrderedItem{}, fmt.Errorf("commit update: %w", err)
	}
	return item, nil
}

// Delete removes the item and leaves the surviving positions untouched.
// Dense ordering comes back with the next Reorder or Compact.
func (s *CollectionStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.table)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", s.table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", s.table, err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Reorder assigns position index+1 to each id in sequence inside one
// transaction. The sequence must cover every live id exactly once;
// anything else rolls back with a validation error.
func (s *CollectionStore) Reorder(ctx context.Context, ids []string) ([]ports.OrderedItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback()

	live, err := s.liveIDsTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := validatePermutation(ids, live); err != nil {
		return nil, err
	}

	update := fmt.Sprintf("UPDATE %s SET position = ?, updated_at = ? WHERE id = ?", s.table)
	now := formatTime(time.Now().UTC())
	for index, id := range ids {
		if _, err := tx.ExecContext(ctx, update, int64(index)+1, now, id); err != nil {
			return nil, fmt.Errorf("reorder %s: %w", s.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reorder: %w", err)
	}
	return s.List(ctx)
}

// Compact renumbers surviving items densely, preserving the current order.
// It is the named second step after deletes have left gaps.
func (s *CollectionStore) Compact(ctx context.Context) ([]ports.OrderedItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin compact: %w", err)
	}
	defer tx.Rollback()

	ids, err := s.liveIDsTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	update := fmt.Sprintf("UPDATE %s SET position = ?, updated_at = ? WHERE id = ?", s.table)
	now := formatTime(time.Now().UTC())
	for index, id := range ids {
		if _, err := tx.ExecContext(ctx, update, int64(index)+1, now, id); err != nil {
			return nil, fmt.Errorf("compact %s: %w", s.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit compact: %w", err)
	}
	return s.List(ctx)
}

func (s *CollectionStore) getItemTx(ctx context.Context, tx *sql.Tx, id string) (ports.OrderedItem, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", collectionColumns, s.table)
	item, err := scanItem(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return ports.OrderedItem{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.OrderedItem{}, fmt.Errorf("get %s item: %w", s.table, err)
	}
	return item, nil
}

// liveIDsTx returns the live ids ordered by current position.
func (s *CollectionStore) liveIDsTx(ctx context.Context, tx *sql.Tx) ([]string, error) {
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY position ASC", s.table)
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", s.table, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", s.table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s ids: %w", s.table, err)
	}
	return ids, nil
}

func validatePermutation(requested, live []string) error {
	if len(requested) != len(live) {
		return fmt.Errorf("%w: reorder must list every item exactly once", ports.ErrValidation)
	}
	seen := make(map[string]bool, len(live))
	for _, id := range live {
		seen[id] = true
	}
	for _, id := range requested {
		if !seen[id] {
			return fmt.Errorf("%w: unknown or duplicate item id %q", ports.ErrValidation, id)
		}
		seen[id] = false
	}
	return nil
}
