package ports

import (
	"context"
	"io"
	"time"

	"github.com/worksync/session-agent/internal/core/domain"
)

// LoginResult is the backend answer to a successful login.
type LoginResult struct {
	Token string             `json:"token"`
	User  domain.UserProfile `json:"user"`
}

// AuthAPI covers the identity endpoints of the WorkSync backend.
type AuthAPI interface {
	Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error)
	// CurrentUser validates token and returns its profile. The token is passed
	// explicitly because bootstrap runs before a session exists.
	CurrentUser(ctx context.Context, token string) (*domain.UserProfile, error)
}

// NotificationAPI covers the notification endpoints.
type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]domain.NotificationItem, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	ClearNotifications(ctx context.Context) error
}

// AttendanceAPI covers the attendance endpoints.
type AttendanceAPI interface {
	MarkAttendance(ctx context.Context, userID string, status domain.AttendanceStatus) (*domain.AttendanceRecord, error)
	TodayAttendance(ctx context.Context, userID string) (*domain.TodayAttendance, error)
	AttendanceHistory(ctx context.Context, userID string) ([]domain.AttendanceRecord, error)
	AttendanceStats(ctx context.Context, userID string) (domain.AttendanceStats, error)
}

// LeaveInput is the body of a new leave request.
type LeaveInput struct {
	Reason    string    `json:"reason"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// LeaveAPI covers the leave endpoints.
type LeaveAPI interface {
	ListLeaves(ctx context.Context, page, limit int) (*domain.LeavePage, error)
	SubmitLeave(ctx context.Context, in LeaveInput) error
	CancelLeave(ctx context.Context, id string) error
}

// RegisterUserInput is the body of an admin-created account.
type RegisterUserInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Position string      `json:"position,omitempty"`
}

// ImageUpload is a profile image to attach to an account.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AdminAPI covers account management and destructive reset endpoints.
type AdminAPI interface {
	RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.UserProfile, error)
	UploadProfileImage(ctx context.Context, userID string, img ImageUpload) error
	DeleteAllUsers(ctx context.Context) (string, error)
	DeleteAllAttendance(ctx context.Context) (string, error)
	DeleteAllLeaves(ctx context.Context) (string, error)
	ResetSystem(ctx context.Context) error
}

// Backend is the full WorkSync REST surface.
type Backend interface {
	AuthAPI
	NotificationAPI
	AttendanceAPI
	LeaveAPI
	AdminAPI
}
