// Package usecase implements the notification inbox and the outbox event processor that fills it.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	notificationDomain "github.com/allisson/crm/internal/notification/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *notificationDomain.Notification) error

	// List returns a page of the user's notifications, newest first.
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*notificationDomain.Notification, error)

	Count(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkRead sets read_at on a notification owned by userID. Returns ErrNotificationNotFound
	// when no such notification exists.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID, readAt time.Time) error
}

// NotificationUseCase covers the notification routes.
type NotificationUseCase interface {
	List(
		ctx context.Context,
		userID uuid.UUID,
		offset, limit int,
	) ([]*notificationDomain.Notification, int, error)

	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

// LinkOpener decrypts the sealed callback link carried by auth link events.
type LinkOpener interface {
	Open(ctx context.Context, sealed string) (string, error)
}

// AuthLink is a decrypted sign-in or recovery link ready for delivery.
type AuthLink struct {
	EventID   uuid.UUID
	EventType string
	UserID    uuid.UUID
	Email     string
	URL       string
}

// AuthLinkSender delivers auth links to the user. URL carries a live single-use code and
// must never be logged.
type AuthLinkSender interface {
	Send(ctx context.Context, link AuthLink) error
}
