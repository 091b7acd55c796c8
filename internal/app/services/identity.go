package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
)

// RoleAdmin is the only role in the system.
const RoleAdmin = "admin"

// IdentityService owns the single administrator credential: login,
// password rotation, and first-run seeding.
type IdentityService struct {
	store    ports.IdentityStore
	sessions *SessionAuthority
}

// NewIdentityService constructs the identity service.
func NewIdentityService(store ports.IdentityStore, sessions *SessionAuthority) *IdentityService {
	return &IdentityService{store: store, sessions: sessions}
}

// Seed creates the admin credential on first run. An existing credential
// is never overwritten.
func (s *IdentityService) Seed(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("%w: admin email and password are required", ports.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return s.store.SeedIdentity(ctx, email, string(hash))
}

// Login verifies the credential pair and issues a session token. Unknown
// email and wrong password return the identical ErrInvalidCredential so
// account existence cannot be probed.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := s.store.GetIdentity(ctx)
	if err != nil {
		return "", ports.ErrInvalidCredential
	}
	if !strings.EqualFold(strings.TrimSpace(email), identity.Email) {
		// Burn a comparison anyway so the unknown-email path costs the
		// same as a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password))
		return "", ports.ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return "", ports.ErrInvalidCredential
	}
	return s.sessions.Issue(identity.Email, RoleAdmin)
}

// ChangePassword rotates the stored hash after verifying the current
// password.
func (s *IdentityService) ChangePassword(ctx context.Context, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return fmt.Errorf("%w: new password is required", ports.ErrValidation)
	}
	identity, err := s.store.GetIdentity(ctx)
	if err != nil {
		return ports.ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(current)); err != nil {
		return ports.ErrInvalidCredential
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}
	return s.store.ReplacePasswordHash(ctx, string(hash))
}
