package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	authUseCase "github.com/allisson/crm/internal/auth/usecase"
	"github.com/allisson/crm/internal/httputil"
)

// Authorizer runs the authorization gate for a handler and applies its cookie effects.
type Authorizer struct {
	gate     authUseCase.Gate
	resolver authUseCase.SessionResolver
	cookies  CookieConfig
	logger   *slog.Logger
}

// NewAuthorizer creates an Authorizer.
func NewAuthorizer(
	gate authUseCase.Gate,
	resolver authUseCase.SessionResolver,
	cookies CookieConfig,
	logger *slog.Logger,
) *Authorizer {
	return &Authorizer{
		gate:     gate,
		resolver: resolver,
		cookies:  cookies,
		logger:   logger,
	}
}

// Authorize evaluates requirement for the request. Rotated tokens are written and stale
// cookies cleared before anything else. On denial or failure the error response is written
// and false is returned; the handler must return immediately.
func (a *Authorizer) Authorize(c *gin.Context, requirement authDomain.Requirement) (*authDomain.AuthDecision, bool) {
	decision, err := a.gate.Authorize(c.Request.Context(), ReadCredentials(c), requirement)
	if decision != nil {
		a.cookies.Apply(c, decision.Rotated, decision.SignedOut)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, a.logger)
		return nil, false
	}
	if !decision.Authorized {
		httputil.HandleErrorGin(c, decision.Err(), a.logger)
		return nil, false
	}
	return decision, true
}

// AuthorizeOrg reads the org_id path parameter and authorizes requirement scoped to that
// organization. A malformed id is rejected with 400 before the gate runs.
func (a *Authorizer) AuthorizeOrg(
	c *gin.Context,
	requirement authDomain.Requirement,
) (*authDomain.AuthDecision, uuid.UUID, bool) {
	orgID, err := httputil.ParseUUIDParam(c, "org_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, a.logger)
		return nil, uuid.Nil, false
	}

	decision, ok := a.Authorize(c, requirement.InOrg(orgID))
	if !ok {
		return nil, uuid.Nil, false
	}
	return decision, orgID, true
}

// Authenticate resolves the session only. Used by endpoints that act on the user
// rather than the profile, such as password updates.
func (a *Authorizer) Authenticate(c *gin.Context) (*authDomain.Identity, bool) {
	resolution, err := a.resolver.Resolve(c.Request.Context(), ReadCredentials(c))
	if resolution != nil {
		a.cookies.Apply(c, resolution.Rotated, resolution.SignedOut)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, a.logger)
		return nil, false
	}
	return resolution.Identity, true
}
