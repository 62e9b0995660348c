// Package mocks provides testify mocks of the notification use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	notificationDomain "github.com/allisson/crm/internal/notification/domain"
)

// MockNotificationUseCase is a mock implementation of usecase.NotificationUseCase.
type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*notificationDomain.Notification, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*notificationDomain.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationUseCase) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
