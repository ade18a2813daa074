package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/infrastructure/worksync"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain and
// backend errors to status codes and renders {"error": "<message>"}.
// Unexpected errors are logged and never leaked to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", "1")
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrBootstrapPending):
		return http.StatusServiceUnavailable, "session bootstrap in progress"
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, "no active session"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrNotConfirmed):
		return http.StatusPreconditionRequired, "confirmation required: retry with confirm=true"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrAlreadyMarked):
		return http.StatusConflict, "attendance already marked today"
	case errors.Is(err, domain.ErrNoAttendanceData):
		return http.StatusNotFound, "no attendance data to export"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests"
	}

	// Anything else the backend refused surfaces as a gateway error carrying
	// the backend message.
	var apiErr *worksync.APIError
	if errors.As(err, &apiErr) {
		log.Warn().
			Err(err).
			Int("backend_status", apiErr.Status).
			Str("path", c.Path()).
			Msg("backend request failed")
		if apiErr.Message == "" {
			return http.StatusBadGateway, "backend request failed"
		}
		return http.StatusBadGateway, apiErr.Message
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
