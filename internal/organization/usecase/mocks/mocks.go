// Package mocks provides testify mocks of the organization use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	orgDomain "github.com/allisson/crm/internal/organization/domain"
)

// MockOrganizationUseCase is a mock implementation of usecase.OrganizationUseCase.
type MockOrganizationUseCase struct {
	mock.Mock
}

func (m *MockOrganizationUseCase) Create(ctx context.Context, name, slug string) (*orgDomain.Organization, error) {
	args := m.Called(ctx, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Organization), args.Error(1)
}

func (m *MockOrganizationUseCase) ListMine(
	ctx context.Context,
	userID uuid.UUID,
) ([]*orgDomain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orgDomain.Organization), args.Error(1)
}

func (m *MockOrganizationUseCase) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Organization), args.Error(1)
}

func (m *MockOrganizationUseCase) Switch(ctx context.Context, userID, orgID uuid.UUID) (*authDomain.Profile, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Profile), args.Error(1)
}

func (m *MockOrganizationUseCase) AddMember(
	ctx context.Context,
	orgID uuid.UUID,
	email string,
	role, grantedBy authDomain.Role,
) (*orgDomain.Member, error) {
	args := m.Called(ctx, orgID, email, role, grantedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Member), args.Error(1)
}

func (m *MockOrganizationUseCase) ListMembers(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Member, int, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*orgDomain.Member), args.Int(1), args.Error(2)
}

func (m *MockOrganizationUseCase) UpdateMemberRole(
	ctx context.Context,
	orgID, userID uuid.UUID,
	role, grantedBy authDomain.Role,
) (*orgDomain.Member, error) {
	args := m.Called(ctx, orgID, userID, role, grantedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Member), args.Error(1)
}
