// Package http provides HTTP handlers for organizations, memberships and profile administration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	authHTTP "github.com/allisson/crm/internal/auth/http"
	authDTO "github.com/allisson/crm/internal/auth/http/dto"
	"github.com/allisson/crm/internal/httputil"
	"github.com/allisson/crm/internal/organization/http/dto"
	orgUseCase "github.com/allisson/crm/internal/organization/usecase"
	customValidation "github.com/allisson/crm/internal/validation"
)

var orgAdmins = authDomain.RequireRoles(authDomain.RoleAdmin, authDomain.RoleOwner)

// OrganizationHandler handles organization and member management endpoints.
type OrganizationHandler struct {
	organizations orgUseCase.OrganizationUseCase
	authorizer    *authHTTP.Authorizer
	logger        *slog.Logger
}

// NewOrganizationHandler creates a new organization handler.
func NewOrganizationHandler(
	organizations orgUseCase.OrganizationUseCase,
	authorizer *authHTTP.Authorizer,
	logger *slog.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		organizations: organizations,
		authorizer:    authorizer,
		logger:        logger,
	}
}

// ListHandler lists the organizations of the signed-in user.
// GET /v1/organizations - Any role.
func (h *OrganizationHandler) ListHandler(c *gin.Context) {
	decision, ok := h.authorizer.Authorize(c, authDomain.AnyRole())
	if !ok {
		return
	}

	orgs, err := h.organizations.ListMine(c.Request.Context(), decision.Identity.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.ListResponse[dto.OrganizationResponse]{
		Data:  dto.MapOrganizationsToResponse(orgs),
		Total: len(orgs),
		Limit: len(orgs),
	})
}

// GetHandler returns the active organization.
// GET /v1/organizations/:org_id - Any role in the same organization.
func (h *OrganizationHandler) GetHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, authDomain.AnyRole())
	if !ok {
		return
	}

	org, err := h.organizations.Get(c.Request.Context(), orgID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrganizationToResponse(org))
}

// SwitchHandler changes the active organization of the signed-in user.
// POST /v1/organizations/switch - Any role; requires a membership in the target organization.
func (h *OrganizationHandler) SwitchHandler(c *gin.Context) {
	decision, ok := h.authorizer.Authorize(c, authDomain.AnyRole())
	if !ok {
		return
	}

	var req dto.SwitchOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	profile, err := h.organizations.Switch(c.Request.Context(), decision.Identity.ID, req.ParsedOrgID())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, authDTO.MapProfileToResponse(profile))
}

// AddMemberHandler adds an existing account to the organization.
// POST /v1/organizations/:org_id/members - Admin or owner of the same organization.
func (h *OrganizationHandler) AddMemberHandler(c *gin.Context) {
	decision, orgID, ok := h.authorizer.AuthorizeOrg(c, orgAdmins)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	member, err := h.organizations.AddMember(
		c.Request.Context(),
		orgID,
		req.Email,
		authDomain.Role(req.Role),
		decision.Profile.Role,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMemberToResponse(member))
}

// ListProfilesHandler lists the members of the organization.
// GET /v1/organizations/:org_id/profiles?offset&limit - Admin or owner of the same organization.
func (h *OrganizationHandler) ListProfilesHandler(c *gin.Context) {
	_, orgID, ok := h.authorizer.AuthorizeOrg(c, orgAdmins)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	members, total, err := h.organizations.ListMembers(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.ListResponse[dto.MemberResponse]{
		Data:   dto.MapMembersToResponse(members),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// UpdateRoleHandler changes the role of a member.
// PUT /v1/organizations/:org_id/profiles/:user_id/role - Admin or owner of the same organization.
// Returns 404 when the target is not a member.
func (h *OrganizationHandler) UpdateRoleHandler(c *gin.Context) {
	decision, orgID, ok := h.authorizer.AuthorizeOrg(c, orgAdmins)
	if !ok {
		return
	}

	userID, err := httputil.ParseUUIDParam(c, "user_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	member, err := h.organizations.UpdateMemberRole(
		c.Request.Context(),
		orgID,
		userID,
		authDomain.Role(req.Role),
		decision.Profile.Role,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMemberToResponse(member))
}
