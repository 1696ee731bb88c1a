package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"paylite-backend/internal/domain/apperr"
	"paylite-backend/internal/domain/session"

	"github.com/labstack/echo/v4"
)

// SessionKey is where Auth stores the *session.AuthState on the echo context.
const SessionKey = "session"

// Authenticator resolves a bearer token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.AuthState, error)
}

// Auth requires "Authorization: Bearer <jwt>" backed by a live session.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			st, err := authn.Authenticate(c.Request().Context(), strings.TrimSpace(raw))
			if err != nil {
				if errors.Is(err, apperr.ErrUnauthorized) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
				}
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
			}
			c.Set(SessionKey, st)
			return next(c)
		}
	}
}

// CurrentSession returns the session set by Auth, or nil.
func CurrentSession(c echo.Context) *session.AuthState {
	st, _ := c.Get(SessionKey).(*session.AuthState)
	return st
}

// RequireAdmin must run after Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if st := CurrentSession(c); st == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		} else if !st.IsAdmin() {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
		}
		return next(c)
	}
}
