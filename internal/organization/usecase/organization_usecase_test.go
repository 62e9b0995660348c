package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	apperrors "github.com/allisson/crm/internal/errors"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
)

type orgFixture struct {
	txManager   *mockTxManager
	orgs        *mockOrganizationRepository
	memberships *mockMembershipRepository
	profiles    *mockProfileStore
	users       *mockUserFinder
	outbox      *mockOutboxRepository
	useCase     *organizationUseCase
	now         time.Time
}

func newOrgFixture() *orgFixture {
	f := &orgFixture{
		txManager:   &mockTxManager{},
		orgs:        &mockOrganizationRepository{},
		memberships: &mockMembershipRepository{},
		profiles:    &mockProfileStore{},
		users:       &mockUserFinder{},
		outbox:      &mockOutboxRepository{},
		now:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.useCase = NewOrganizationUseCase(f.txManager, f.orgs, f.memberships, f.profiles, f.users, f.outbox).(*organizationUseCase)
	f.useCase.now = func() time.Time { return f.now }
	return f
}

func (f *orgFixture) assertExpectations(t *testing.T) {
	f.txManager.AssertExpectations(t)
	f.orgs.AssertExpectations(t)
	f.memberships.AssertExpectations(t)
	f.profiles.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
}

func TestOrganizationUseCase_Create(t *testing.T) {
	f := newOrgFixture()
	ctx := context.Background()

	f.orgs.On("Create", ctx, mock.MatchedBy(func(org *orgDomain.Organization) bool {
		return org.Name == "Acme" && org.Slug == "acme" && org.ID != uuid.Nil && org.CreatedAt.Equal(f.now)
	})).Return(nil).Once()

	org, err := f.useCase.Create(ctx, "  Acme ", "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", org.Name)
	f.assertExpectations(t)
}

func TestOrganizationUseCase_Switch(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	orgID := uuid.Must(uuid.NewV7())

	t.Run("Success_RoleComesFromMembership", func(t *testing.T) {
		f := newOrgFixture()
		profile := &authDomain.Profile{UserID: userID, Role: authDomain.RoleSales, OrgID: &orgID}

		f.memberships.On("Get", ctx, orgID, userID).
			Return(&orgDomain.Member{UserID: userID, Role: authDomain.RoleSales}, nil).
			Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.profiles.On("SetOrganization", ctx, userID, orgID, authDomain.RoleSales).Return(nil).Once()
		f.outbox.On("Create", ctx, mock.MatchedBy(func(event *outboxDomain.OutboxEvent) bool {
			var payload outboxDomain.OrganizationSwitchedPayload
			return event.EventType == outboxDomain.EventOrganizationSwitched &&
				event.Decode(&payload) == nil &&
				payload.OrgID == orgID && payload.Role == "sales"
		})).Return(nil).Once()
		f.profiles.On("Get", ctx, userID).Return(profile, nil).Once()

		result, err := f.useCase.Switch(ctx, userID, orgID)
		require.NoError(t, err)
		assert.Equal(t, profile, result)
		f.assertExpectations(t)
	})

	t.Run("Error_NotAMember", func(t *testing.T) {
		f := newOrgFixture()

		f.memberships.On("Get", ctx, orgID, userID).Return(nil, orgDomain.ErrMemberNotFound).Once()

		_, err := f.useCase.Switch(ctx, userID, orgID)
		assert.ErrorIs(t, err, orgDomain.ErrNotAMember)
		f.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
		f.profiles.AssertNotCalled(t, "SetOrganization", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_StoreFailurePassesThrough", func(t *testing.T) {
		f := newOrgFixture()
		dbErr := errors.New("connection refused")

		f.memberships.On("Get", ctx, orgID, userID).Return(nil, dbErr).Once()

		_, err := f.useCase.Switch(ctx, userID, orgID)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, orgDomain.ErrNotAMember)
	})
}

func TestOrganizationUseCase_AddMember(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	user := &authDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "new@example.com"}
	org := &orgDomain.Organization{ID: orgID, Name: "Acme"}

	t.Run("Success_CreatesMissingProfile", func(t *testing.T) {
		f := newOrgFixture()
		member := &orgDomain.Member{UserID: user.ID, Email: user.Email, Role: authDomain.RoleSales}

		f.orgs.On("Get", ctx, orgID).Return(org, nil).Once()
		f.users.On("GetByEmail", ctx, "new@example.com").Return(user, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.memberships.On("Create", ctx, mock.MatchedBy(func(m *orgDomain.Membership) bool {
			return m.OrgID == orgID && m.UserID == user.ID && m.Role == authDomain.RoleSales
		})).Return(nil).Once()
		f.profiles.On("Get", ctx, user.ID).Return(nil, authDomain.ErrProfileNotFound).Once()
		f.profiles.On("Create", ctx, mock.MatchedBy(func(p *authDomain.Profile) bool {
			return p.UserID == user.ID && p.Role == authDomain.RoleSales && p.InOrg(orgID)
		})).Return(nil).Once()
		f.memberships.On("Get", ctx, orgID, user.ID).Return(member, nil).Once()

		result, err := f.useCase.AddMember(ctx, orgID, " New@Example.com ", authDomain.RoleSales, authDomain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, member, result)
		f.assertExpectations(t)
	})

	t.Run("Success_ActivatesOrgForProfileWithoutOne", func(t *testing.T) {
		f := newOrgFixture()

		f.orgs.On("Get", ctx, orgID).Return(org, nil).Once()
		f.users.On("GetByEmail", ctx, "new@example.com").Return(user, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.memberships.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.profiles.On("Get", ctx, user.ID).Return(&authDomain.Profile{UserID: user.ID, Role: authDomain.RoleMember}, nil).Once()
		f.profiles.On("SetOrganization", ctx, user.ID, orgID, authDomain.RoleOwner).Return(nil).Once()
		f.memberships.On("Get", ctx, orgID, user.ID).Return(&orgDomain.Member{UserID: user.ID}, nil).Once()

		_, err := f.useCase.AddMember(ctx, orgID, "new@example.com", authDomain.RoleOwner, authDomain.RoleOwner)
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("Success_LeavesProfileActiveElsewhere", func(t *testing.T) {
		f := newOrgFixture()
		otherOrg := uuid.Must(uuid.NewV7())

		f.orgs.On("Get", ctx, orgID).Return(org, nil).Once()
		f.users.On("GetByEmail", ctx, "new@example.com").Return(user, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.memberships.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.profiles.On("Get", ctx, user.ID).
			Return(&authDomain.Profile{UserID: user.ID, Role: authDomain.RoleOwner, OrgID: &otherOrg}, nil).
			Once()
		f.memberships.On("Get", ctx, orgID, user.ID).Return(&orgDomain.Member{UserID: user.ID}, nil).Once()

		_, err := f.useCase.AddMember(ctx, orgID, "new@example.com", authDomain.RoleMember, authDomain.RoleAdmin)
		require.NoError(t, err)
		f.profiles.AssertNotCalled(t, "SetOrganization", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_AdminCannotGrantOwner", func(t *testing.T) {
		f := newOrgFixture()

		_, err := f.useCase.AddMember(ctx, orgID, "new@example.com", authDomain.RoleOwner, authDomain.RoleAdmin)
		assert.ErrorIs(t, err, orgDomain.ErrOwnerRoleRequired)
		f.users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownEmail", func(t *testing.T) {
		f := newOrgFixture()

		f.orgs.On("Get", ctx, orgID).Return(org, nil).Once()
		f.users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, authDomain.ErrUserNotFound).Once()

		_, err := f.useCase.AddMember(ctx, orgID, "ghost@example.com", authDomain.RoleSales, authDomain.RoleOwner)
		assert.ErrorIs(t, err, authDomain.ErrUserNotFound)
		f.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("Error_AlreadyMember", func(t *testing.T) {
		f := newOrgFixture()

		f.orgs.On("Get", ctx, orgID).Return(org, nil).Once()
		f.users.On("GetByEmail", ctx, "new@example.com").Return(user, nil).Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.memberships.On("Create", ctx, mock.Anything).Return(orgDomain.ErrMemberAlreadyExists).Once()

		_, err := f.useCase.AddMember(ctx, orgID, "new@example.com", authDomain.RoleSales, authDomain.RoleOwner)
		assert.ErrorIs(t, err, orgDomain.ErrMemberAlreadyExists)
		f.profiles.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestOrganizationUseCase_ListMembers(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		f := newOrgFixture()
		members := []*orgDomain.Member{{UserID: uuid.Must(uuid.NewV7())}}

		f.memberships.On("List", ctx, orgID, 0, 50).Return(members, nil).Once()
		f.memberships.On("Count", ctx, orgID).Return(7, nil).Once()

		result, total, err := f.useCase.ListMembers(ctx, orgID, 0, 50)
		require.NoError(t, err)
		assert.Equal(t, members, result)
		assert.Equal(t, 7, total)
	})

	t.Run("Error_CountFails", func(t *testing.T) {
		f := newOrgFixture()
		dbErr := errors.New("timeout")

		f.memberships.On("List", ctx, orgID, 0, 50).Return([]*orgDomain.Member{}, nil).Once()
		f.memberships.On("Count", ctx, orgID).Return(0, dbErr).Once()

		_, _, err := f.useCase.ListMembers(ctx, orgID, 0, 50)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestOrganizationUseCase_UpdateMemberRole(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		f := newOrgFixture()

		f.memberships.On("Get", ctx, orgID, userID).
			Return(&orgDomain.Member{UserID: userID, Role: authDomain.RoleMember}, nil).
			Once()
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.memberships.On("UpdateRole", ctx, orgID, userID, authDomain.RoleSales).Return(nil).Once()
		f.profiles.On("SyncRole", ctx, userID, orgID, authDomain.RoleSales).Return(nil).Once()

		member, err := f.useCase.UpdateMemberRole(ctx, orgID, userID, authDomain.RoleSales, authDomain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, authDomain.RoleSales, member.Role)
		f.assertExpectations(t)
	})

	t.Run("Error_NotAMember", func(t *testing.T) {
		f := newOrgFixture()

		f.memberships.On("Get", ctx, orgID, userID).Return(nil, orgDomain.ErrMemberNotFound).Once()

		_, err := f.useCase.UpdateMemberRole(ctx, orgID, userID, authDomain.RoleSales, authDomain.RoleOwner)
		assert.ErrorIs(t, err, orgDomain.ErrMemberNotFound)
	})

	t.Run("Error_AdminCannotDemoteOwner", func(t *testing.T) {
		f := newOrgFixture()

		f.memberships.On("Get", ctx, orgID, userID).
			Return(&orgDomain.Member{UserID: userID, Role: authDomain.RoleOwner}, nil).
			Once()

		_, err := f.useCase.UpdateMemberRole(ctx, orgID, userID, authDomain.RoleSales, authDomain.RoleAdmin)
		assert.ErrorIs(t, err, orgDomain.ErrOwnerRoleRequired)
		f.memberships.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_OwnerCannotPromoteSelfToAdmin", func(t *testing.T) {
		f := newOrgFixture()

		f.memberships.On("Get", ctx, orgID, userID).
			Return(&orgDomain.Member{UserID: userID, Role: authDomain.RoleOwner}, nil).
			Once()

		member, err := f.useCase.UpdateMemberRole(ctx, orgID, userID, authDomain.RoleAdmin, authDomain.RoleOwner)
		assert.ErrorIs(t, err, orgDomain.ErrAdminRoleRequired)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, member)
		f.memberships.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.profiles.AssertNotCalled(t, "SyncRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_OwnerCannotAddAdmin", func(t *testing.T) {
		f := newOrgFixture()

		_, err := f.useCase.AddMember(ctx, orgID, "new@example.com", authDomain.RoleAdmin, authDomain.RoleOwner)
		assert.ErrorIs(t, err, orgDomain.ErrAdminRoleRequired)
		f.users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}
