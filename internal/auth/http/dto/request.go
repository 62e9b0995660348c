// Package dto provides data transfer objects for the auth endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/crm/internal/validation"
)

// SignInRequest contains email/password credentials.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the sign-in request is valid.
func (r *SignInRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// MagicLinkRequest asks for a passwordless sign-in link.
type MagicLinkRequest struct {
	Email string `json:"email"`
	Next  string `json:"next"`
}

// Validate checks if the magic link request is valid.
func (r *MagicLinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Next, validation.Length(0, 2048)),
	)
}

// RecoverRequest asks for a password recovery link.
type RecoverRequest struct {
	Email string `json:"email"`
}

// Validate checks if the recovery request is valid.
func (r *RecoverRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
	)
}

// UpdatePasswordRequest sets a new password for the signed-in user.
type UpdatePasswordRequest struct {
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the password meets the strength policy.
func (r *UpdatePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required, customValidation.DefaultPassword),
	)
}
