// Package mocks provides testify mocks of the auth use cases for handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

// MockGate is a mock implementation of usecase.Gate.
type MockGate struct {
	mock.Mock
}

// Authorize mocks the Authorize method.
func (m *MockGate) Authorize(
	ctx context.Context,
	credentials authDomain.Credentials,
	requirement authDomain.Requirement,
) (*authDomain.AuthDecision, error) {
	args := m.Called(ctx, credentials, requirement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AuthDecision), args.Error(1)
}

// MockSessionUseCase is a mock implementation of usecase.SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Resolve(
	ctx context.Context,
	credentials authDomain.Credentials,
) (*authDomain.Resolution, error) {
	args := m.Called(ctx, credentials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Resolution), args.Error(1)
}

func (m *MockSessionUseCase) GetUser(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

func (m *MockSessionUseCase) RefreshSession(
	ctx context.Context,
	refreshToken string,
) (*authDomain.Identity, *authDomain.IssuedTokens, error) {
	args := m.Called(ctx, refreshToken)
	var identity *authDomain.Identity
	var tokens *authDomain.IssuedTokens
	if args.Get(0) != nil {
		identity = args.Get(0).(*authDomain.Identity)
	}
	if args.Get(1) != nil {
		tokens = args.Get(1).(*authDomain.IssuedTokens)
	}
	return identity, tokens, args.Error(2)
}

func (m *MockSessionUseCase) ExchangeCodeForSession(ctx context.Context, code string) (*authDomain.Exchange, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Exchange), args.Error(1)
}

func (m *MockSessionUseCase) SignOut(ctx context.Context, credentials authDomain.Credentials) error {
	args := m.Called(ctx, credentials)
	return args.Error(0)
}

func (m *MockSessionUseCase) SignInWithPassword(
	ctx context.Context,
	email, password string,
) (*authDomain.Exchange, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Exchange), args.Error(1)
}

func (m *MockSessionUseCase) RequestMagicLink(ctx context.Context, email, next string) error {
	args := m.Called(ctx, email, next)
	return args.Error(0)
}

func (m *MockSessionUseCase) RequestRecovery(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockSessionUseCase) UpdatePassword(
	ctx context.Context,
	identity *authDomain.Identity,
	password string,
) error {
	args := m.Called(ctx, identity, password)
	return args.Error(0)
}

func (m *MockSessionUseCase) CreateUser(ctx context.Context, email, password string) (*authDomain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

func (m *MockSessionUseCase) CleanExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}
