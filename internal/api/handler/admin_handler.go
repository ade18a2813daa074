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

// AdminService is the admin surface used by AdminHandler.
type AdminService interface {
	RegisterUser(ctx context.Context, in ports.RegisterUserInput) (*domain.UserProfile, error)
	UploadProfileImage(ctx context.Context, userID string, img ports.ImageUpload) error
	DeleteAllUsers(ctx context.Context, c ports.Confirmer) (string, error)
	DeleteAllAttendance(ctx context.Context, c ports.Confirmer) (string, error)
	DeleteAllLeaves(ctx context.Context, c ports.Confirmer) (string, error)
	ResetSystem(ctx context.Context, c ports.Confirmer) error
}

// AdminHandler serves the admin settings screen. Routes are mounted behind
// RBAC(domain.RoleAdmin); the service checks the role again.
type AdminHandler struct {
	admin AdminService
}

func NewAdminHandler(admin AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// RegisterUser handles POST /v1/admin/users.
func (h *AdminHandler) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.admin.RegisterUser(c.Request().Context(), ports.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Position: req.Position,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, registerUserResponse{
		User:             user,
		PasswordStrength: string(service.GradePassword(req.Password)),
	})
}

// UploadImage handles POST /v1/admin/users/:id/image with a multipart
// profileImage field.
func (h *AdminHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("profileImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "profileImage is required")
	}
	img := ports.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
	}
	// Reject before opening the part.
	if err := service.ValidateProfileImage(img); err != nil {
		return err
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	img.Body = f

	if err := h.admin.UploadProfileImage(c.Request().Context(), c.Param("id"), img); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PasswordStrength handles POST /v1/admin/password/strength.
func (h *AdminHandler) PasswordStrength(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, passwordResponse{Strength: string(service.GradePassword(req.Password))})
}

// GeneratePassword handles POST /v1/admin/password/generate.
func (h *AdminHandler) GeneratePassword(c echo.Context) error {
	pwd, err := service.GeneratePassword()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, passwordResponse{Password: pwd, Strength: string(service.GradePassword(pwd))})
}

// DeleteUsers handles DELETE /v1/admin/users?confirm=true.
func (h *AdminHandler) DeleteUsers(c echo.Context) error {
	return h.reset(c, h.admin.DeleteAllUsers)
}

// DeleteAttendance handles DELETE /v1/admin/attendance?confirm=true.
func (h *AdminHandler) DeleteAttendance(c echo.Context) error {
	return h.reset(c, h.admin.DeleteAllAttendance)
}

// DeleteLeaves handles DELETE /v1/admin/leaves?confirm=true.
func (h *AdminHandler) DeleteLeaves(c echo.Context) error {
	return h.reset(c, h.admin.DeleteAllLeaves)
}

// ResetSystem handles POST /v1/admin/reset-system?confirm=true.
func (h *AdminHandler) ResetSystem(c echo.Context) error {
	return h.reset(c, func(ctx context.Context, conf ports.Confirmer) (string, error) {
		return "System Reset Complete", h.admin.ResetSystem(ctx, conf)
	})
}

// reset runs a destructive action. Without confirm=true the answer is 428
// carrying the prompt the user has to accept.
func (h *AdminHandler) reset(c echo.Context, action func(context.Context, ports.Confirmer) (string, error)) error {
	host := newRequestHost(c)
	msg, err := action(c.Request().Context(), host)
	if errors.Is(err, domain.ErrNotConfirmed) && host.prompt != "" {
		return echo.NewHTTPError(http.StatusPreconditionRequired, host.prompt)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
