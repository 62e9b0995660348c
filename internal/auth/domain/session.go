package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side sign-in. The refresh token is stored only as a SHA-256 hash.
type Session struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RefreshTokenHash string
	ExpiresAt        time.Time
	RevokedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive reports whether the session can still authenticate requests at now.
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// Credentials is the credential material of an inbound request.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// IsEmpty reports whether no credential was supplied.
func (c Credentials) IsEmpty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// IssuedTokens is a freshly issued access/refresh pair that must be written back to the client.
type IssuedTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Resolution is the outcome of resolving credentials.
//
// Rotated is set when the session was refreshed; SignedOut is set when the refresh failed
// and the client must drop its cookies. Both must be applied before any response is written.
type Resolution struct {
	Identity  *Identity
	Rotated   *IssuedTokens
	SignedOut bool
}
