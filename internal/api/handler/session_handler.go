package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/service"
)

// SessionService is the session surface used by SessionHandler.
type SessionService interface {
	State() service.SessionState
	Authenticate(ctx context.Context, email, password string, remember bool) (*domain.UserProfile, error)
	Logout(ctx context.Context) error
	TokenExpiry(ctx context.Context) (time.Time, bool)
}

// SessionHandler exposes the current session to the UI.
type SessionHandler struct {
	sessions SessionService
}

func NewSessionHandler(sessions SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// State handles GET /v1/session. It is public so the UI can render its
// loading state while bootstrap is still running.
func (h *SessionHandler) State(c echo.Context) error {
	st := h.sessions.State()
	resp := sessionResponse{User: st.CurrentUser, BootstrapInProgress: st.BootstrapInProgress}
	if st.CurrentUser != nil {
		if exp, ok := h.sessions.TokenExpiry(c.Request().Context()); ok {
			resp.TokenExpiresAt = exp.UTC().Format(time.RFC3339)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Login handles POST /v1/session/login.
func (h *SessionHandler) Login(c echo.Context) error {
	if h.sessions.State().BootstrapInProgress {
		return domain.ErrBootstrapPending
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessions.Authenticate(c.Request().Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Logout handles POST /v1/session/logout. It succeeds without a session
// but not while bootstrap may still restore one.
func (h *SessionHandler) Logout(c echo.Context) error {
	if h.sessions.State().BootstrapInProgress {
		return domain.ErrBootstrapPending
	}
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
