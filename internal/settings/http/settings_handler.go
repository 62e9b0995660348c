// Package http provides HTTP handlers for the site settings.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	authHTTP "github.com/allisson/crm/internal/auth/http"
	"github.com/allisson/crm/internal/httputil"
	"github.com/allisson/crm/internal/settings/http/dto"
	settingsUseCase "github.com/allisson/crm/internal/settings/usecase"
	customValidation "github.com/allisson/crm/internal/validation"
)

// SettingsHandler handles the public site metadata and the admin settings endpoints.
type SettingsHandler struct {
	settings   settingsUseCase.SettingsUseCase
	authorizer *authHTTP.Authorizer
	logger     *slog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(
	settings settingsUseCase.SettingsUseCase,
	authorizer *authHTTP.Authorizer,
	logger *slog.Logger,
) *SettingsHandler {
	return &SettingsHandler{
		settings:   settings,
		authorizer: authorizer,
		logger:     logger,
	}
}

// SiteHandler returns the cached page metadata.
// GET /v1/site - Public. Always 200; defaults are served when the store is unavailable.
func (h *SettingsHandler) SiteHandler(c *gin.Context) {
	metadata := h.settings.SiteMetadata(c.Request.Context())
	c.JSON(http.StatusOK, dto.SiteResponse{Title: metadata.Title, Description: metadata.Description})
}

// ListHandler lists the stored settings.
// GET /v1/admin/settings - Requires the admin role.
func (h *SettingsHandler) ListHandler(c *gin.Context) {
	if _, ok := h.authorizer.Authorize(c, authDomain.RequireRoles(authDomain.RoleAdmin)); !ok {
		return
	}

	settings, err := h.settings.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.ListResponse[dto.SettingResponse]{
		Data:  dto.MapSettingsToResponse(settings),
		Total: len(settings),
		Limit: len(settings),
	})
}

// SetHandler upserts a setting and invalidates its cached value.
// PUT /v1/admin/settings/:key - Requires the admin role.
func (h *SettingsHandler) SetHandler(c *gin.Context) {
	if _, ok := h.authorizer.Authorize(c, authDomain.RequireRoles(authDomain.RoleAdmin)); !ok {
		return
	}

	key := c.Param("key")

	var req dto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(key); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	setting, err := h.settings.Set(c.Request.Context(), key, req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingToResponse(setting))
}
