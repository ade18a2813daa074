package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

// LeaveService is the leave surface used by LeaveHandler.
type LeaveService interface {
	ListLeaves(ctx context.Context, page, limit int) (*domain.LeavePage, error)
	SubmitLeave(ctx context.Context, in ports.LeaveInput) error
	CancelLeave(ctx context.Context, id string) error
}

type LeaveHandler struct {
	leaves LeaveService
}

func NewLeaveHandler(leaves LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// List handles GET /v1/leaves?page=&limit=. Missing or malformed paging
// values fall back to the service defaults.
func (h *LeaveHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.leaves.ListLeaves(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Submit handles POST /v1/leaves.
func (h *LeaveHandler) Submit(c echo.Context) error {
	var req submitLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Already checked by the datetime tag.
	start, _ := time.Parse(time.DateOnly, req.StartDate)
	end, _ := time.Parse(time.DateOnly, req.EndDate)

	in := ports.LeaveInput{Reason: req.Reason, StartDate: start, EndDate: end}
	if err := h.leaves.SubmitLeave(c.Request().Context(), in); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Leave request submitted"})
}

// Cancel handles DELETE /v1/leaves/:id.
func (h *LeaveHandler) Cancel(c echo.Context) error {
	if err := h.leaves.CancelLeave(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
