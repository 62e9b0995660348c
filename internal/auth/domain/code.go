package domain

import (
	"time"

	"github.com/google/uuid"
)

// CodeType discriminates single-use auth codes.
type CodeType string

const (
	CodeTypeSignIn   CodeType = "signin"
	CodeTypeRecovery CodeType = "recovery"
)

// AuthCode is a single-use exchange code sent by magic-link and recovery emails.
type AuthCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CodeHash  string
	Type      CodeType
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsUsable reports whether the code can still be exchanged at now.
func (c *AuthCode) IsUsable(now time.Time) bool {
	return c.UsedAt == nil && now.Before(c.ExpiresAt)
}

// Exchange is the result of exchanging an auth code for a session.
type Exchange struct {
	Identity *Identity
	Tokens   *IssuedTokens
	Type     CodeType
}
