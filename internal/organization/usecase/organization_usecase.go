package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	"github.com/allisson/crm/internal/database"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
)

type organizationUseCase struct {
	txManager      database.TxManager
	orgRepo        OrganizationRepository
	membershipRepo MembershipRepository
	profiles       ProfileStore
	users          UserFinder
	outboxRepo     OutboxRepository
	now            func() time.Time
}

func (o *organizationUseCase) Create(ctx context.Context, name, slug string) (*orgDomain.Organization, error) {
	now := o.now().UTC()
	org := &orgDomain.Organization{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(name),
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (o *organizationUseCase) ListMine(ctx context.Context, userID uuid.UUID) ([]*orgDomain.Organization, error) {
	return o.orgRepo.ListByMember(ctx, userID)
}

func (o *organizationUseCase) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	return o.orgRepo.Get(ctx, orgID)
}

func (o *organizationUseCase) Switch(ctx context.Context, userID, orgID uuid.UUID) (*authDomain.Profile, error) {
	member, err := o.membershipRepo.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, orgDomain.ErrMemberNotFound) {
			return nil, orgDomain.ErrNotAMember
		}
		return nil, err
	}

	event, err := outboxDomain.NewEvent(outboxDomain.EventOrganizationSwitched, outboxDomain.OrganizationSwitchedPayload{
		UserID: userID,
		OrgID:  orgID,
		Role:   string(member.Role),
	})
	if err != nil {
		return nil, err
	}

	var profile *authDomain.Profile
	err = o.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := o.profiles.SetOrganization(ctx, userID, orgID, member.Role); err != nil {
			return err
		}
		if err := o.outboxRepo.Create(ctx, event); err != nil {
			return err
		}
		loaded, err := o.profiles.Get(ctx, userID)
		profile = loaded
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (o *organizationUseCase) AddMember(
	ctx context.Context,
	orgID uuid.UUID,
	email string,
	role, grantedBy authDomain.Role,
) (*orgDomain.Member, error) {
	if err := orgDomain.CheckGrant(grantedBy, "", role); err != nil {
		return nil, err
	}

	if _, err := o.orgRepo.Get(ctx, orgID); err != nil {
		return nil, err
	}

	user, err := o.users.GetByEmail(ctx, authDomain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	now := o.now().UTC()
	var member *orgDomain.Member
	err = o.txManager.WithTx(ctx, func(ctx context.Context) error {
		err := o.membershipRepo.Create(ctx, &orgDomain.Membership{
			OrgID:     orgID,
			UserID:    user.ID,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		if err := o.ensureProfile(ctx, user.ID, orgID, role, now); err != nil {
			return err
		}

		member, err = o.membershipRepo.Get(ctx, orgID, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ensureProfile creates the profile of a first-time member, or activates orgID for a
// profile that has no organization yet. Profiles active elsewhere are left as they are.
func (o *organizationUseCase) ensureProfile(
	ctx context.Context,
	userID, orgID uuid.UUID,
	role authDomain.Role,
	now time.Time,
) error {
	profile, err := o.profiles.Get(ctx, userID)
	if errors.Is(err, authDomain.ErrProfileNotFound) {
		return o.profiles.Create(ctx, &authDomain.Profile{
			UserID:    userID,
			Role:      role,
			OrgID:     &orgID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err != nil {
		return err
	}
	if profile.OrgID == nil {
		return o.profiles.SetOrganization(ctx, userID, orgID, role)
	}
	return nil
}

func (o *organizationUseCase) ListMembers(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Member, int, error) {
	members, err := o.membershipRepo.List(ctx, orgID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := o.membershipRepo.Count(ctx, orgID)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (o *organizationUseCase) UpdateMemberRole(
	ctx context.Context,
	orgID, userID uuid.UUID,
	role, grantedBy authDomain.Role,
) (*orgDomain.Member, error) {
	member, err := o.membershipRepo.Get(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if err := orgDomain.CheckGrant(grantedBy, member.Role, role); err != nil {
		return nil, err
	}

	err = o.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := o.membershipRepo.UpdateRole(ctx, orgID, userID, role); err != nil {
			return err
		}
		return o.profiles.SyncRole(ctx, userID, orgID, role)
	})
	if err != nil {
		return nil, err
	}

	member.Role = role
	return member, nil
}

// NewOrganizationUseCase creates a new OrganizationUseCase.
func NewOrganizationUseCase(
	txManager database.TxManager,
	orgRepo OrganizationRepository,
	membershipRepo MembershipRepository,
	profiles ProfileStore,
	users UserFinder,
	outboxRepo OutboxRepository,
) OrganizationUseCase {
	return &organizationUseCase{
		txManager:      txManager,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		profiles:       profiles,
		users:          users,
		outboxRepo:     outboxRepo,
		now:            time.Now,
	}
}
