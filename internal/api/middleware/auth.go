package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worksync/session-agent/internal/core/domain"
)

// Context keys set by RequireSession.
const (
	UserKey = "user"
	RoleKey = "role"
)

// SessionGate is the read side of the session manager.
type SessionGate interface {
	BootstrapInProgress() bool
	CurrentUser() *domain.UserProfile
}

// RequireSession holds protected routes until bootstrap has resolved and
// rejects requests without a signed-in user. The user snapshot is injected
// into the context.
func RequireSession(gate SessionGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if gate.BootstrapInProgress() {
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session bootstrap in progress")
			}

			user := gate.CurrentUser()
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
			}

			c.Set(UserKey, user)
			c.Set(RoleKey, string(user.Role))

			return next(c)
		}
	}
}
