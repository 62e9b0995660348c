package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of authorization levels.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleSales  Role = "sales"
	RoleMember Role = "member"
)

var allRoles = []Role{RoleAdmin, RoleOwner, RoleSales, RoleMember}

// ParseRole converts s into a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !slices.Contains(allRoles, r) {
		return "", ErrInvalidRole
	}
	return r, nil
}

// RoleValues returns every valid role as a string, for validation rules.
func RoleValues() []any {
	values := make([]any, 0, len(allRoles))
	for _, r := range allRoles {
		values = append(values, string(r))
	}
	return values
}

// Profile attaches a role and an organization to an identity. OrgID is nil while the
// user has not joined any organization.
type Profile struct {
	UserID    uuid.UUID
	FullName  string
	Role      Role
	OrgID     *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InOrg reports whether the profile's current organization is orgID.
func (p *Profile) InOrg(orgID uuid.UUID) bool {
	return p.OrgID != nil && *p.OrgID == orgID
}

// HasRole reports whether the profile role is one of roles. An empty set admits any role.
func (p *Profile) HasRole(roles []Role) bool {
	return len(roles) == 0 || slices.Contains(roles, p.Role)
}
