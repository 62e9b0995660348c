// Package dto provides data transfer objects for the organization endpoints.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	customValidation "github.com/allisson/crm/internal/validation"
)

// SwitchOrganizationRequest selects the active organization.
type SwitchOrganizationRequest struct {
	OrgID string `json:"org_id"`
}

// Validate checks if the switch request is valid.
func (r *SwitchOrganizationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OrgID, validation.Required, customValidation.UUID),
	)
}

// ParsedOrgID returns the validated organization id.
func (r *SwitchOrganizationRequest) ParsedOrgID() uuid.UUID {
	return uuid.MustParse(r.OrgID)
}

// AddMemberRequest adds an existing account to an organization.
type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Validate checks if the add member request is valid.
func (r *AddMemberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Role, validation.Required, validation.In(authDomain.RoleValues()...)),
	)
}

// UpdateRoleRequest changes the role of a member.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Validate checks if the update role request is valid.
func (r *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role, validation.Required, validation.In(authDomain.RoleValues()...)),
	)
}

// CreateOrganizationRequest registers a new organization. Used by the admin command.
type CreateOrganizationRequest struct {
	Name string
	Slug string
}

// Validate checks if the create organization request is valid.
func (r *CreateOrganizationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Required, customValidation.Slug, validation.Length(1, 64)),
	)
}
