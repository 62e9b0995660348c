package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/crm/internal/errors"
	metricsMocks "github.com/allisson/crm/internal/metrics/mocks"
	"github.com/allisson/crm/internal/notification/usecase"
	usecaseMocks "github.com/allisson/crm/internal/notification/usecase/mocks"
)

func TestNotificationUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	notificationID := uuid.Must(uuid.NewV7())

	next := &usecaseMocks.MockNotificationUseCase{}
	m := &metricsMocks.MockBusinessMetrics{}
	uc := usecase.NewNotificationUseCaseWithMetrics(next, m)

	next.On("MarkRead", ctx, userID, notificationID).Return(apperrors.ErrNotFound).Once()
	m.ExpectObserve(ctx, "notification", "notification_mark_read", "error")

	err := uc.MarkRead(ctx, userID, notificationID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	m.AssertExpectations(t)
	next.AssertExpectations(t)
}
