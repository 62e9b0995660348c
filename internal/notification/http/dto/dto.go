// Package dto provides data transfer objects for the notification endpoints.
package dto

import (
	"time"

	notificationDomain "github.com/allisson/crm/internal/notification/domain"
)

// NotificationResponse is the public view of a notification.
type NotificationResponse struct {
	ID        string     `json:"id"`
	OrgID     *string    `json:"org_id,omitempty"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MapNotificationToResponse converts a notification into its response.
func MapNotificationToResponse(notification *notificationDomain.Notification) NotificationResponse {
	response := NotificationResponse{
		ID:        notification.ID.String(),
		Kind:      notification.Kind,
		Title:     notification.Title,
		Body:      notification.Body,
		Read:      notification.IsRead(),
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}
	if notification.OrgID != nil {
		orgID := notification.OrgID.String()
		response.OrgID = &orgID
	}
	return response
}

// MapNotificationsToResponse converts a list of notifications.
func MapNotificationsToResponse(notifications []*notificationDomain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, MapNotificationToResponse(notification))
	}
	return responses
}
