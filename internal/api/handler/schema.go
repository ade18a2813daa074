package handler

import "github.com/worksync/session-agent/internal/core/domain"

// --- Request types ---

type loginRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type markReadRequest struct {
	Link string `json:"link"`
}

type markAttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=Present Absent Half-day Leave"`
}

type submitLeaveRequest struct {
	Reason    string `json:"reason"    validate:"required,max=500"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate"   validate:"required,datetime=2006-01-02"`
}

type registerUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=Admin Employee"`
	Position string `json:"position"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// --- Response types ---

type sessionResponse struct {
	User                *domain.UserProfile `json:"user"`
	BootstrapInProgress bool                `json:"bootstrapInProgress"`
	TokenExpiresAt      string              `json:"tokenExpiresAt,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type passwordResponse struct {
	Password string `json:"password,omitempty"`
	Strength string `json:"strength"`
}

type registerUserResponse struct {
	User             *domain.UserProfile `json:"user"`
	PasswordStrength string              `json:"passwordStrength"`
}
