// Package service provides the credential primitives used by the session resolver:
// password hashing, opaque refresh tokens and auth codes, and signed access tokens.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	// Hash returns an encoded Argon2id hash of plain.
	Hash(plain string) (string, error)

	// Compare reports whether plain matches hash. It runs in constant time.
	Compare(plain, hash string) bool
}

// TokenService generates opaque random tokens and their storage hashes. It backs
// refresh tokens and single-use auth codes.
type TokenService interface {
	// GenerateToken returns a URL-safe random token and its SHA-256 hex hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken returns the SHA-256 hex hash of plainToken.
	HashToken(plainToken string) string
}

// AccessClaims are the verified contents of an access token.
type AccessClaims struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// AccessTokenService issues and verifies short-lived signed access tokens.
type AccessTokenService interface {
	// Issue signs an access token for identity, valid from now for the configured TTL.
	Issue(identity *authDomain.Identity, now time.Time) (token string, expiresAt time.Time, err error)

	// Verify checks signature, issuer and expiry and returns the claims.
	Verify(token string) (*AccessClaims, error)
}

// LinkSealer encrypts callback links so the plaintext code never reaches the outbox table.
type LinkSealer interface {
	Seal(ctx context.Context, link string) (string, error)
	Open(ctx context.Context, sealed string) (string, error)
	Close() error
}
