package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is the fixed validity window for issued session tokens.
// There is no revocation list: a leaked token stays valid until this
// window runs out.
const TokenLifetime = 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, or past expiry. Verification fails closed.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims are the identity claims carried by a session token.
type SessionClaims struct {
	Email string
	Role  string
}

// SessionAuthority issues and verifies stateless HS256-signed session
// tokens. Validity is fully determined by the signature and the embedded
// expiry; no server-side state is kept.
type SessionAuthority struct {
	secret []byte
	now    func() time.Time
}

// NewSessionAuthority creates an authority signing with the given secret.
func NewSessionAuthority(secret []byte) *SessionAuthority {
	return &SessionAuthority{secret: secret, now: time.Now}
}

// Issue produces a signed token binding the identity and role for the
// fixed token lifetime.
func (a *SessionAuthority) Issue(email, role string) (string, error) {
	now := a.now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify validates the token and extracts its claims. Any failure yields
// ErrInvalidToken; the cause is not distinguished to callers.
func (a *SessionAuthority) Verify(tokenString string) (SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return SessionClaims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return SessionClaims{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return SessionClaims{Email: email, Role: role}, nil
}
