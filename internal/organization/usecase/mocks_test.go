package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
	outboxDomain "github.com/allisson/crm/internal/outbox/domain"
)

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type mockOrganizationRepository struct {
	mock.Mock
}

func (m *mockOrganizationRepository) Create(ctx context.Context, org *orgDomain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockOrganizationRepository) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) ListByMember(
	ctx context.Context,
	userID uuid.UUID,
) ([]*orgDomain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orgDomain.Organization), args.Error(1)
}

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) Create(ctx context.Context, membership *orgDomain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockMembershipRepository) Get(ctx context.Context, orgID, userID uuid.UUID) (*orgDomain.Member, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Member), args.Error(1)
}

func (m *mockMembershipRepository) List(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Member, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orgDomain.Member), args.Error(1)
}

func (m *mockMembershipRepository) Count(ctx context.Context, orgID uuid.UUID) (int, error) {
	args := m.Called(ctx, orgID)
	return args.Int(0), args.Error(1)
}

func (m *mockMembershipRepository) UpdateRole(
	ctx context.Context,
	orgID, userID uuid.UUID,
	role authDomain.Role,
) error {
	args := m.Called(ctx, orgID, userID, role)
	return args.Error(0)
}

type mockProfileStore struct {
	mock.Mock
}

func (m *mockProfileStore) Create(ctx context.Context, profile *authDomain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileStore) Get(ctx context.Context, userID uuid.UUID) (*authDomain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Profile), args.Error(1)
}

func (m *mockProfileStore) SetOrganization(
	ctx context.Context,
	userID, orgID uuid.UUID,
	role authDomain.Role,
) error {
	args := m.Called(ctx, userID, orgID, role)
	return args.Error(0)
}

func (m *mockProfileStore) SyncRole(ctx context.Context, userID, orgID uuid.UUID, role authDomain.Role) error {
	args := m.Called(ctx, userID, orgID, role)
	return args.Error(0)
}

type mockUserFinder struct {
	mock.Mock
}

func (m *mockUserFinder) GetByEmail(ctx context.Context, email string) (*authDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

type mockOutboxRepository struct {
	mock.Mock
}

func (m *mockOutboxRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
