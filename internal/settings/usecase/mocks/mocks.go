// Package mocks provides testify mocks of the settings use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	settingsDomain "github.com/allisson/crm/internal/settings/domain"
)

// MockSettingsUseCase is a mock implementation of usecase.SettingsUseCase.
type MockSettingsUseCase struct {
	mock.Mock
}

func (m *MockSettingsUseCase) SiteMetadata(ctx context.Context) *settingsDomain.SiteMetadata {
	args := m.Called(ctx)
	return args.Get(0).(*settingsDomain.SiteMetadata)
}

func (m *MockSettingsUseCase) List(ctx context.Context) ([]*settingsDomain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settingsDomain.Setting), args.Error(1)
}

func (m *MockSettingsUseCase) Set(ctx context.Context, key, value string) (*settingsDomain.Setting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsDomain.Setting), args.Error(1)
}
