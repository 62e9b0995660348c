// Package domain defines the identity, session and authorization models shared by every
// protected route.
//
// A request is authorized in four ordered steps: its Credentials resolve to an Identity,
// the Identity loads a Profile, the Profile role must satisfy the Requirement roles, and the
// Profile organization must match the Requirement organization when one is given.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored account behind an Identity.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string //nolint:gosec // argon2id hash, empty for passwordless accounts
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated principal of a request. It is read-only for the request lifetime.
type Identity struct {
	ID        uuid.UUID
	Email     string
	SessionID uuid.UUID
}
