package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	notificationDomain "github.com/allisson/crm/internal/notification/domain"
)

type notificationUseCase struct {
	notificationRepo NotificationRepository
	now              func() time.Time
}

func (n *notificationUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*notificationDomain.Notification, int, error) {
	notifications, err := n.notificationRepo.List(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := n.notificationRepo.Count(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (n *notificationUseCase) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return n.notificationRepo.MarkRead(ctx, userID, notificationID, n.now().UTC())
}

// NewNotificationUseCase creates a new NotificationUseCase.
func NewNotificationUseCase(notificationRepo NotificationRepository) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}
