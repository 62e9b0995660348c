package domain

import (
	"github.com/allisson/crm/internal/errors"
)

// Organization errors.
var (
	// ErrOrganizationNotFound indicates the organization does not exist.
	ErrOrganizationNotFound = errors.Wrap(errors.ErrNotFound, "organization not found")

	// ErrOrganizationAlreadyExists indicates the slug is taken.
	ErrOrganizationAlreadyExists = errors.Wrap(errors.ErrConflict, "organization already exists")

	// ErrMemberNotFound indicates the user is not a member of the organization.
	ErrMemberNotFound = errors.Wrap(errors.ErrNotFound, "member not found")

	// ErrMemberAlreadyExists indicates the user already belongs to the organization.
	ErrMemberAlreadyExists = errors.Wrap(errors.ErrConflict, "member already exists")

	// ErrNotAMember indicates an organization switch to an organization the user does not belong to.
	ErrNotAMember = errors.Wrap(errors.ErrForbidden, "not a member of the organization")

	// ErrOwnerRoleRequired indicates a non-owner tried to grant or revoke the owner role.
	ErrOwnerRoleRequired = errors.Wrap(errors.ErrForbidden, "only owners can grant or revoke the owner role")

	// ErrAdminRoleRequired indicates a non-admin tried to grant or revoke the admin role.
	ErrAdminRoleRequired = errors.Wrap(errors.ErrForbidden, "only admins can grant or revoke the admin role")
)
