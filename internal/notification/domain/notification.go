// Package domain defines in-app notifications.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/crm/internal/errors"
)

// Notification kinds mirror the outbox events that produce them.
const (
	KindOrganizationSwitched = "organization.switched"
	KindTransactionCreated   = "transaction.created"
)

// Notification is a message addressed to a single user.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	OrgID     *uuid.UUID
	Kind      string
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// IsRead reports whether the notification was marked read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// ErrNotificationNotFound indicates the notification does not exist or belongs to someone else.
var ErrNotificationNotFound = errors.Wrap(errors.ErrNotFound, "notification not found")
