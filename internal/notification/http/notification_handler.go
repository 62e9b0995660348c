// Package http provides HTTP handlers for the notification inbox.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	authHTTP "github.com/allisson/crm/internal/auth/http"
	"github.com/allisson/crm/internal/httputil"
	"github.com/allisson/crm/internal/notification/http/dto"
	notificationUseCase "github.com/allisson/crm/internal/notification/usecase"
)

// NotificationHandler handles notification endpoints. Every route acts on the caller's own inbox.
type NotificationHandler struct {
	notifications notificationUseCase.NotificationUseCase
	authorizer    *authHTTP.Authorizer
	logger        *slog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(
	notifications notificationUseCase.NotificationUseCase,
	authorizer *authHTTP.Authorizer,
	logger *slog.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		authorizer:    authorizer,
		logger:        logger,
	}
}

// ListHandler lists the caller's notifications.
// GET /v1/notifications?offset&limit - Any role.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	decision, ok := h.authorizer.Authorize(c, authDomain.AnyRole())
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	notifications, total, err := h.notifications.List(c.Request.Context(), decision.Identity.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.ListResponse[dto.NotificationResponse]{
		Data:   dto.MapNotificationsToResponse(notifications),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// MarkReadHandler marks one of the caller's notifications as read.
// POST /v1/notifications/:notification_id/read - Any role.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	decision, ok := h.authorizer.Authorize(c, authDomain.AnyRole())
	if !ok {
		return
	}

	notificationID, err := httputil.ParseUUIDParam(c, "notification_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), decision.Identity.ID, notificationID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
