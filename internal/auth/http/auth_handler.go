package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/crm/internal/auth/domain"
	"github.com/allisson/crm/internal/auth/http/dto"
	authUseCase "github.com/allisson/crm/internal/auth/usecase"
	"github.com/allisson/crm/internal/httputil"
	customValidation "github.com/allisson/crm/internal/validation"
)

// callbackFailedMessage is shown on the sign-in page when a code cannot be exchanged.
const callbackFailedMessage = "Could not sign you in. The link may have expired."

// Redirects holds the browser destinations used by the auth callback.
type Redirects struct {
	SignInPath        string
	PasswordResetPath string
	DefaultRedirect   string
}

// AuthHandler handles the sign-in, sign-out, recovery and callback endpoints.
type AuthHandler struct {
	sessions   authUseCase.SessionUseCase
	authorizer *Authorizer
	cookies    CookieConfig
	redirects  Redirects
	logger     *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	sessions authUseCase.SessionUseCase,
	authorizer *Authorizer,
	cookies CookieConfig,
	redirects Redirects,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		authorizer: authorizer,
		cookies:    cookies,
		redirects:  redirects,
		logger:     logger,
	}
}

// SignInHandler signs a user in with email and password.
// POST /v1/auth/sign-in - Sets the session cookies and returns 200 OK with the user.
func (h *AuthHandler) SignInHandler(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	exchange, err := h.sessions.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.cookies.SetSession(c, exchange.Tokens)
	c.JSON(http.StatusOK, dto.MapIdentityToResponse(exchange.Identity))
}

// SignOutHandler revokes the current session and clears the cookies.
// POST /v1/auth/sign-out - Returns 204 No Content, also when no session was present.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	if err := h.sessions.SignOut(c.Request.Context(), ReadCredentials(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.cookies.Clear(c)
	c.Status(http.StatusNoContent)
}

// MagicLinkHandler sends a passwordless sign-in link.
// POST /v1/auth/magic-link - Returns 202 Accepted whether or not the email is registered.
func (h *AuthHandler) MagicLinkHandler(c *gin.Context) {
	var req dto.MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.sessions.RequestMagicLink(c.Request.Context(), req.Email, req.Next); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusAccepted)
}

// RecoverHandler sends a password recovery link.
// POST /v1/auth/recover - Returns 202 Accepted whether or not the email is registered.
func (h *AuthHandler) RecoverHandler(c *gin.Context) {
	var req dto.RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.sessions.RequestRecovery(c.Request.Context(), req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusAccepted)
}

// UpdatePasswordHandler sets a new password for the signed-in user.
// POST /v1/auth/password - Requires a session, no profile. Returns 204 No Content.
func (h *AuthHandler) UpdatePasswordHandler(c *gin.Context) {
	identity, ok := h.authorizer.Authenticate(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.sessions.UpdatePassword(c.Request.Context(), identity, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// MeHandler returns the signed-in user and profile.
// GET /v1/me - Any role. Returns 401 with the no-profile message when no profile exists.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	decision, ok := h.authorizer.Authorize(c, authDomain.AnyRole())
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		User:    dto.MapIdentityToResponse(decision.Identity),
		Profile: dto.MapProfileToResponse(decision.Profile),
	})
}

// CallbackHandler completes a magic link or recovery flow.
// GET /auth/callback?code&next&type&error&error_description - Always answers with a redirect.
func (h *AuthHandler) CallbackHandler(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		message := c.Query("error_description")
		if message == "" {
			message = providerErr
		}
		h.redirectToSignIn(c, message)
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirectToSignIn(c, "Missing sign-in code.")
		return
	}

	exchange, err := h.sessions.ExchangeCodeForSession(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("auth callback exchange failed", slog.Any("error", err))
		h.redirectToSignIn(c, callbackFailedMessage)
		return
	}

	h.cookies.SetSession(c, exchange.Tokens)

	if c.Query("type") == string(authDomain.CodeTypeRecovery) || exchange.Type == authDomain.CodeTypeRecovery {
		c.Redirect(http.StatusFound, h.redirects.PasswordResetPath)
		return
	}
	c.Redirect(http.StatusFound, authDomain.SafeRedirect(c.Query("next"), h.redirects.DefaultRedirect))
}

func (h *AuthHandler) redirectToSignIn(c *gin.Context, message string) {
	query := url.Values{}
	query.Set("error", message)
	c.Redirect(http.StatusFound, h.redirects.SignInPath+"?"+query.Encode())
}
