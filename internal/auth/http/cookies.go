// Package http provides the HTTP surface of authentication: session cookies, the
// authorizer used by every protected handler, and the auth endpoints.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/crm/internal/auth/domain"
)

// Session cookie names.
const (
	AccessTokenCookie  = "crm_access_token"
	RefreshTokenCookie = "crm_refresh_token"
)

// CookieConfig holds the attributes shared by both session cookies.
type CookieConfig struct {
	Secure bool
	Domain string
}

// ReadCredentials reads the session cookies of the request. Missing cookies are empty.
func ReadCredentials(c *gin.Context) authDomain.Credentials {
	var credentials authDomain.Credentials
	if v, err := c.Cookie(AccessTokenCookie); err == nil {
		credentials.AccessToken = v
	}
	if v, err := c.Cookie(RefreshTokenCookie); err == nil {
		credentials.RefreshToken = v
	}
	return credentials
}

// SetSession writes both session cookies.
func (cfg CookieConfig) SetSession(c *gin.Context, tokens *authDomain.IssuedTokens) {
	cfg.write(c, AccessTokenCookie, tokens.AccessToken, tokens.AccessExpiresAt)
	cfg.write(c, RefreshTokenCookie, tokens.RefreshToken, tokens.RefreshExpiresAt)
}

// Clear expires both session cookies.
func (cfg CookieConfig) Clear(c *gin.Context) {
	cfg.write(c, AccessTokenCookie, "", time.Unix(0, 0))
	cfg.write(c, RefreshTokenCookie, "", time.Unix(0, 0))
}

// Apply writes rotated tokens or clears the cookies after a resolution.
// Must run before the response body is written.
func (cfg CookieConfig) Apply(c *gin.Context, rotated *authDomain.IssuedTokens, signedOut bool) {
	switch {
	case rotated != nil:
		cfg.SetSession(c, rotated)
	case signedOut:
		cfg.Clear(c)
	}
}

func (cfg CookieConfig) write(c *gin.Context, name, value string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  expires,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	http.SetCookie(c.Writer, cookie)
}
