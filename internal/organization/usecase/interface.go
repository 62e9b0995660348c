// Package usecase implements organization membership, switching and profile administration.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
)

// OrganizationRepository defines persistence operations for organizations.
type OrganizationRepository interface {
	// Create stores a new organization. Returns ErrOrganizationAlreadyExists on a duplicate slug.
	Create(ctx context.Context, org *orgDomain.Organization) error

	// Get returns ErrOrganizationNotFound if not found.
	Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error)

	// ListByMember returns the organizations userID belongs to, ordered by name.
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*orgDomain.Organization, error)
}

// MembershipRepository defines persistence operations for memberships.
type MembershipRepository interface {
	// Create returns ErrMemberAlreadyExists when the user already belongs to the organization.
	Create(ctx context.Context, membership *orgDomain.Membership) error

	// Get returns ErrMemberNotFound if userID is not a member of orgID.
	Get(ctx context.Context, orgID, userID uuid.UUID) (*orgDomain.Member, error)

	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*orgDomain.Member, error)

	Count(ctx context.Context, orgID uuid.UUID) (int, error)

	// UpdateRole returns ErrMemberNotFound if userID is not a member of orgID.
	UpdateRole(ctx context.Context, orgID, userID uuid.UUID, role authDomain.Role) error
}

// ProfileStore is the subset of profile persistence the organization flows need.
type ProfileStore interface {
	Create(ctx context.Context, profile *authDomain.Profile) error
	Get(ctx context.Context, userID uuid.UUID) (*authDomain.Profile, error)
	SetOrganization(ctx context.Context, userID, orgID uuid.UUID, role authDomain.Role) error
	SyncRole(ctx context.Context, userID, orgID uuid.UUID, role authDomain.Role) error
}

// UserFinder looks up accounts by email.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*authDomain.User, error)
}

// OutboxRepository stores events for asynchronous delivery.
type OutboxRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// OrganizationUseCase covers the organization routes and the admin commands.
type OrganizationUseCase interface {
	// Create registers a new organization.
	Create(ctx context.Context, name, slug string) (*orgDomain.Organization, error)

	// ListMine returns the organizations the user is a member of.
	ListMine(ctx context.Context, userID uuid.UUID) ([]*orgDomain.Organization, error)

	Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error)

	// Switch makes orgID the active organization of the user, taking the role from the
	// membership. Returns ErrNotAMember when no membership exists.
	Switch(ctx context.Context, userID, orgID uuid.UUID) (*authDomain.Profile, error)

	// AddMember adds the account registered under email to the organization. grantedBy is the
	// role of the caller; only owners may grant the owner role.
	AddMember(
		ctx context.Context,
		orgID uuid.UUID,
		email string,
		role, grantedBy authDomain.Role,
	) (*orgDomain.Member, error)

	// ListMembers returns a page of members and the total member count.
	ListMembers(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*orgDomain.Member, int, error)

	// UpdateMemberRole changes the role of an existing member and keeps the profile in sync
	// when the member is active in the organization.
	UpdateMemberRole(
		ctx context.Context,
		orgID, userID uuid.UUID,
		role, grantedBy authDomain.Role,
	) (*orgDomain.Member, error)
}
