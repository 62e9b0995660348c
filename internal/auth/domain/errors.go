package domain

import (
	"github.com/allisson/crm/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrUnauthenticated indicates the request carries no usable session.
	ErrUnauthenticated = errors.Wrap(errors.ErrUnauthorized, "unauthenticated")

	// ErrRefreshRaced indicates a concurrent request already rotated the presented refresh
	// token. The session itself is still live.
	ErrRefreshRaced = errors.Wrap(ErrUnauthenticated, "refresh token already rotated")

	// ErrInvalidCredentials indicates a failed email/password sign-in.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrNoProfile indicates the identity is valid but has no profile row.
	ErrNoProfile = errors.Wrap(errors.ErrNoProfile, "no profile found for this user")

	// ErrForbidden indicates the profile lacks the required role or organization.
	ErrForbidden = errors.Wrap(errors.ErrForbidden, "forbidden")

	// ErrUserNotFound indicates a user with the specified ID or email was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrSessionNotFound indicates no live session matched.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrCodeNotFound indicates the auth code is unknown, expired or already used.
	ErrCodeNotFound = errors.Wrap(errors.ErrNotFound, "auth code not found")

	// ErrProfileNotFound indicates the target profile of an admin operation does not exist.
	ErrProfileNotFound = errors.Wrap(errors.ErrNotFound, "profile not found")

	// ErrUserAlreadyExists indicates the email is already registered.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidRole indicates a role outside the closed set.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)
