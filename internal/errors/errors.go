// Package errors holds the domain error sentinels shared by every CRM module. Use cases wrap them
// with context; the HTTP layer maps them to status codes through httputil.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the record is absent or belongs to another organization. Callers must not
	// be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint rejected the write.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means the request failed validation or a business precondition.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized means no valid session could be resolved.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoProfile means the session is valid but the identity has no profile row.
	ErrNoProfile = errors.New("no profile")

	// ErrForbidden means the profile lacks the required role or organization.
	ErrForbidden = errors.New("forbidden")
)

// Wrap prefixes err with message, keeping it matchable. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsAny reports whether err matches one of targets.
func IsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
