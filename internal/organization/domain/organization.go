// Package domain defines organizations and their memberships.
package domain

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

// Organization is a tenant. Every org-scoped record belongs to exactly one organization.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership grants a user a role inside an organization. A user may belong to many
// organizations; the profile tracks which one is active.
type Membership struct {
	OrgID     uuid.UUID
	UserID    uuid.UUID
	Role      authDomain.Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member is a membership joined with the account and profile of its user.
type Member struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	Role     authDomain.Role
	JoinedAt time.Time
}

// CheckGrant reports whether a profile with role actor may set target on a member currently
// holding current. Only admins grant or revoke admin, which unlocks the process-wide settings.
// Only owners grant or revoke owner.
func CheckGrant(actor, current, target authDomain.Role) error {
	if (current == authDomain.RoleAdmin || target == authDomain.RoleAdmin) && actor != authDomain.RoleAdmin {
		return ErrAdminRoleRequired
	}
	if (current == authDomain.RoleOwner || target == authDomain.RoleOwner) && actor != authDomain.RoleOwner {
		return ErrOwnerRoleRequired
	}
	return nil
}
