package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	usecaseMocks "github.com/allisson/crm/internal/auth/usecase/mocks"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestContext creates a test Gin context with the given request.
func createTestContext(method, path string, body any, cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	c.Request = req

	return c, w
}

func responseCookies(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := map[string]*http.Cookie{}
	for _, cookie := range w.Result().Cookies() {
		cookies[cookie.Name] = cookie
	}
	return cookies
}

func setupAuthTestHandler(t *testing.T) (*AuthHandler, *usecaseMocks.MockSessionUseCase, *usecaseMocks.MockGate) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	sessions := &usecaseMocks.MockSessionUseCase{}
	gate := &usecaseMocks.MockGate{}
	logger := newTestLogger()
	cookies := CookieConfig{Secure: true}

	handler := NewAuthHandler(
		sessions,
		NewAuthorizer(gate, sessions, cookies, logger),
		cookies,
		Redirects{
			SignInPath:        "/sign-in",
			PasswordResetPath: "/reset-password",
			DefaultRedirect:   "/dashboard",
		},
		logger,
	)
	return handler, sessions, gate
}
