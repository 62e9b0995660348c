package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/crm/internal/metrics"
	notificationDomain "github.com/allisson/crm/internal/notification/domain"
)

// notificationUseCaseWithMetrics decorates NotificationUseCase with metrics instrumentation.
type notificationUseCaseWithMetrics struct {
	next    NotificationUseCase
	metrics metrics.BusinessMetrics
}

// NewNotificationUseCaseWithMetrics wraps a NotificationUseCase with metrics recording.
func NewNotificationUseCaseWithMetrics(next NotificationUseCase, m metrics.BusinessMetrics) NotificationUseCase {
	return &notificationUseCaseWithMetrics{next: next, metrics: m}
}

func (u *notificationUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*notificationDomain.Notification, int, error) {
	start := time.Now()
	notifications, total, err := u.next.List(ctx, userID, offset, limit)
	metrics.Observe(ctx, u.metrics, "notification", "notification_list", start, metrics.StatusFromError(err))
	return notifications, total, err
}

func (u *notificationUseCaseWithMetrics) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	start := time.Now()
	err := u.next.MarkRead(ctx, userID, notificationID)
	metrics.Observe(ctx, u.metrics, "notification", "notification_mark_read", start, metrics.StatusFromError(err))
	return err
}
