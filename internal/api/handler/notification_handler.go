package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
	"github.com/worksync/session-agent/internal/core/service"
)

// NotificationService is the synchronizer surface used by NotificationHandler.
type NotificationService interface {
	Snapshot() service.NotificationSnapshot
	Refresh(ctx context.Context) error
	MarkRead(ctx context.Context, id, link string, host ports.Host) error
	MarkAllRead(ctx context.Context) error
	ClearAll(ctx context.Context, host ports.Host) error
}

// NotificationHandler serves the notification panel.
type NotificationHandler struct {
	notifications NotificationService
}

func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type markReadResponse struct {
	service.NotificationSnapshot
	hostEffects
}

type readAllResponse struct {
	service.NotificationSnapshot
	Warning string `json:"warning,omitempty"`
}

// List handles GET /v1/notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.notifications.Snapshot())
}

// Refresh handles POST /v1/notifications/refresh.
func (h *NotificationHandler) Refresh(c echo.Context) error {
	if err := h.notifications.Refresh(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.notifications.Snapshot())
}

// MarkRead handles POST /v1/notifications/:id/read. An optional link in the
// body is echoed back as navigation once the backend confirms.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	var req markReadRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
	}

	host := newRequestHost(c)
	if err := h.notifications.MarkRead(c.Request().Context(), c.Param("id"), req.Link, host); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markReadResponse{
		NotificationSnapshot: h.notifications.Snapshot(),
		hostEffects:          host.effects(),
	})
}

// MarkAllRead handles POST /v1/notifications/read-all. A backend failure is
// not blocking: state is unchanged and the response carries a warning.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	resp := readAllResponse{}
	if err := h.notifications.MarkAllRead(c.Request().Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		resp.Warning = "failed to mark all notifications as read"
	}
	resp.NotificationSnapshot = h.notifications.Snapshot()
	return c.JSON(http.StatusOK, resp)
}

// ClearAll handles DELETE /v1/notifications?confirm=true.
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	host := newRequestHost(c)
	err := h.notifications.ClearAll(c.Request().Context(), host)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, h.notifications.Snapshot())
	case errors.Is(err, domain.ErrNotConfirmed):
		return echo.NewHTTPError(http.StatusPreconditionRequired, host.prompt)
	case len(host.alerts) > 0:
		return echo.NewHTTPError(http.StatusBadGateway, host.alerts[0])
	default:
		return err
	}
}
