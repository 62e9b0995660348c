// Package usecase implements session resolution, profile loading and the authorization gate.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *authDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*authDomain.User, error)

	// GetByEmail retrieves a user by normalized email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*authDomain.User, error)

	// UpdatePassword replaces the password hash. Returns ErrUserNotFound if not found.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *authDomain.Session) error

	// Get retrieves a session by ID. Returns ErrSessionNotFound if not found.
	Get(ctx context.Context, sessionID uuid.UUID) (*authDomain.Session, error)

	// GetByRefreshTokenHash returns ErrSessionNotFound if no session holds the hash.
	GetByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*authDomain.Session, error)

	// Rotate swaps the refresh token hash only if the session still holds oldHash and is
	// not revoked. Returns ErrSessionNotFound when the swap did not apply.
	Rotate(ctx context.Context, sessionID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error

	// Revoke marks the session revoked. Revoking an already revoked session is a no-op.
	Revoke(ctx context.Context, sessionID uuid.UUID) error

	// DeleteExpired removes sessions that expired or were revoked before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// AuthCodeRepository defines persistence operations for single-use auth codes.
type AuthCodeRepository interface {
	Create(ctx context.Context, code *authDomain.AuthCode) error

	// GetByCodeHashForUpdate locks the code row for the current transaction.
	// Returns ErrCodeNotFound if not found.
	GetByCodeHashForUpdate(ctx context.Context, codeHash string) (*authDomain.AuthCode, error)

	MarkUsed(ctx context.Context, codeID uuid.UUID) error

	// DeleteExpired removes codes that expired before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ProfileRepository defines the profile lookup used by the loader.
type ProfileRepository interface {
	// Get retrieves the profile of a user. Returns ErrProfileNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*authDomain.Profile, error)
}

// OutboxRepository stores events for asynchronous delivery.
type OutboxRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// SessionResolver turns request credentials into an Identity.
type SessionResolver interface {
	// Resolve verifies the access token and falls back to exactly one refresh.
	//
	// When the request is unauthenticated it returns ErrUnauthenticated together with a
	// non-nil Resolution whose SignedOut flag tells the caller to clear its cookies. Losing a
	// concurrent rotation is not a sign-out.
	// Store failures are returned unchanged.
	Resolve(ctx context.Context, credentials authDomain.Credentials) (*authDomain.Resolution, error)
}

// SessionUseCase covers every session and credential flow.
type SessionUseCase interface {
	SessionResolver

	// GetUser verifies an access token and its session. Returns ErrUnauthenticated when either is invalid.
	GetUser(ctx context.Context, accessToken string) (*authDomain.Identity, error)

	// RefreshSession rotates the refresh token and issues a new access token.
	RefreshSession(
		ctx context.Context,
		refreshToken string,
	) (*authDomain.Identity, *authDomain.IssuedTokens, error)

	// ExchangeCodeForSession consumes a single-use code and opens a session.
	ExchangeCodeForSession(ctx context.Context, code string) (*authDomain.Exchange, error)

	// SignOut revokes the session named by the credentials. It never fails for unknown sessions.
	SignOut(ctx context.Context, credentials authDomain.Credentials) error

	// SignInWithPassword opens a session for valid email and password.
	SignInWithPassword(ctx context.Context, email, password string) (*authDomain.Exchange, error)

	// RequestMagicLink enqueues a sign-in link. Unknown emails succeed silently.
	RequestMagicLink(ctx context.Context, email, next string) error

	// RequestRecovery enqueues a password recovery link. Unknown emails succeed silently.
	RequestRecovery(ctx context.Context, email string) error

	// UpdatePassword sets a new password for the identity.
	UpdatePassword(ctx context.Context, identity *authDomain.Identity, password string) error

	// CreateUser registers an account. An empty password creates a passwordless account.
	CreateUser(ctx context.Context, email, password string) (*authDomain.User, error)

	// CleanExpired removes sessions and codes that ended more than olderThan ago.
	CleanExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

// ProfileLoader loads the profile of a resolved identity.
type ProfileLoader interface {
	// Load performs one lookup per call. Returns ErrNoProfile when no profile row exists.
	Load(ctx context.Context, identity *authDomain.Identity) (*authDomain.Profile, error)
}

// Gate composes session resolution, profile loading, role check and org check.
type Gate interface {
	// Authorize runs the four steps in order and stops at the first denial. The error is
	// reserved for store failures; a partial decision carrying rotated tokens may accompany it.
	Authorize(
		ctx context.Context,
		credentials authDomain.Credentials,
		requirement authDomain.Requirement,
	) (*authDomain.AuthDecision, error)
}
