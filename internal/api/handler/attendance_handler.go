package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/service"
)

// AttendanceService is the attendance surface used by AttendanceHandler.
type AttendanceService interface {
	MarkAttendance(ctx context.Context, status domain.AttendanceStatus) (*domain.AttendanceRecord, error)
	TodayAttendance(ctx context.Context) (*domain.TodayAttendance, error)
	AttendanceHistory(ctx context.Context) ([]domain.AttendanceRecord, error)
	AttendanceStats(ctx context.Context) (domain.AttendanceStats, error)
	ExportAttendance(ctx context.Context, date string, loc *time.Location) (*service.AttendanceExport, error)
}

// AttendanceHandler serves the attendance dashboard.
type AttendanceHandler struct {
	attendance AttendanceService
	loc        *time.Location
}

// NewAttendanceHandler renders exported timestamps in loc.
func NewAttendanceHandler(attendance AttendanceService, loc *time.Location) *AttendanceHandler {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceHandler{attendance: attendance, loc: loc}
}

type alreadyMarkedResponse struct {
	Error      string                   `json:"error"`
	Attendance *domain.AttendanceRecord `json:"attendance,omitempty"`
}

// Mark handles POST /v1/attendance. A second mark on the same day answers
// 409 with the existing record.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req markAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.attendance.MarkAttendance(c.Request().Context(), domain.AttendanceStatus(req.Status))
	if errors.Is(err, domain.ErrAlreadyMarked) {
		return c.JSON(http.StatusConflict, alreadyMarkedResponse{
			Error:      "attendance already marked today",
			Attendance: rec,
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

// Today handles GET /v1/attendance/today.
func (h *AttendanceHandler) Today(c echo.Context) error {
	today, err := h.attendance.TodayAttendance(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, today)
}

// History handles GET /v1/attendance/history.
func (h *AttendanceHandler) History(c echo.Context) error {
	records, err := h.attendance.AttendanceHistory(c.Request().Context())
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.AttendanceRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

// Stats handles GET /v1/attendance/stats.
func (h *AttendanceHandler) Stats(c echo.Context) error {
	stats, err := h.attendance.AttendanceStats(c.Request().Context())
	if err != nil {
		return err
	}
	if stats == nil {
		stats = domain.AttendanceStats{}
	}
	return c.JSON(http.StatusOK, stats)
}

// Export handles GET /v1/attendance/export?date=YYYY-MM-DD and answers with
// a CSV attachment.
func (h *AttendanceHandler) Export(c echo.Context) error {
	out, err := h.attendance.ExportAttendance(c.Request().Context(), c.QueryParam("date"), h.loc)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", out.Content)
}
