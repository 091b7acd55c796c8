package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
	"github.com/vitrine-cms/vitrine/internal/db"
)

// IdentityStore persists the singleton administrator credential.
type IdentityStore struct {
	db *sql.DB
}

// NewIdentityStore returns the sqlite-backed identity store.
func NewIdentityStore(database *db.Database) *IdentityStore {
	return &IdentityStore{db: database.SQL()}
}

var _ ports.IdentityStore = (*IdentityStore)(nil)

// GetIdentity loads the admin credential.
func (s *IdentityStore) GetIdentity(ctx context.Context) (ports.AdminIdentity, error) {
	var identity ports.AdminIdentity
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT email, password_hash, updated_at FROM admin_identity WHERE id = 1",
	).Scan(&identity.Email, &identity.PasswordHash, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.AdminIdentity{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.AdminIdentity{}, fmt.Errorf("get admin identity: %w", err)
	}
	identity.UpdatedAt = parseTime(updatedAt)
	return identity, nil
}

// SeedIdentity creates the credential if none exists yet. An existing row
// is left untouched.
func (s *IdentityStore) SeedIdentity(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO admin_identity (id, email, password_hash, updated_at) VALUES (1, ?, ?, ?) ON CONFLICT (id) DO NOTHING",
		email, passwordHash, formatTime(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("seed admin identity: %w", err)
	}
	return nil
}

// ReplacePasswordHash swaps the stored hash in place.
func (s *IdentityStore) ReplacePasswordHash(ctx context.Context, passwordHash string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE admin_identity SET password_hash = ?, updated_at = ? WHERE id = 1",
		passwordHash, formatTime(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("replace password hash: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace password hash: %w", err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
