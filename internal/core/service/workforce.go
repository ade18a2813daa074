package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/worksync/session-agent/internal/api/metrics"
	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

const (
	attendanceHistoryLimit = 7
	defaultLeavePageSize   = 5
	maxProfileImageBytes   = 5 * 1024 * 1024
)

// Prompts shown before destructive admin actions.
const (
	PromptDeleteUsers      = "This will permanently delete all employee accounts. Admin accounts will remain. This action cannot be undone."
	PromptDeleteAttendance = "This will permanently delete all attendance records from the system. This action cannot be undone."
	PromptDeleteLeaves     = "This will permanently delete all leave requests regardless of status. This action cannot be undone."
	PromptResetSystem      = "WARNING: This will delete ALL attendance records, ALL leaves, and ALL users (except you). This cannot be undone. Are you absolutely sure?"
)

// CurrentUserSource is read access to the session. SessionManager satisfies it.
type CurrentUserSource interface {
	CurrentUser() *domain.UserProfile
}

// WorkforceBackend is the part of the backend the workforce operations use.
type WorkforceBackend interface {
	ports.AttendanceAPI
	ports.LeaveAPI
	ports.AdminAPI
}

// WorkforceService runs the attendance, leave and admin actions on behalf of
// the signed-in user.
type WorkforceService struct {
	backend  WorkforceBackend
	sessions CurrentUserSource
	logger   zerolog.Logger
}

func NewWorkforceService(backend WorkforceBackend, sessions CurrentUserSource, logger zerolog.Logger) *WorkforceService {
	return &WorkforceService{backend: backend, sessions: sessions, logger: logger}
}

// ── Attendance ────────────────────────────────────────────────────────────────

// MarkAttendance records today's status for the current user. A second mark
// on the same day is refused before any write.
func (s *WorkforceService) MarkAttendance(ctx context.Context, status domain.AttendanceStatus) (*domain.AttendanceRecord, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("mark attendance: %w: unknown status %q", domain.ErrInvalidInput, status)
	}

	today, err := s.backend.TodayAttendance(ctx, user.ID)
	if err != nil {
		metrics.ObserveAction("mark_attendance", err)
		return nil, fmt.Errorf("mark attendance: check today: %w", err)
	}
	if today.HasAttendance {
		metrics.ObserveAction("mark_attendance", domain.ErrAlreadyMarked)
		return today.Attendance, fmt.Errorf("mark attendance: %w", domain.ErrAlreadyMarked)
	}

	rec, err := s.backend.MarkAttendance(ctx, user.ID, status)
	metrics.ObserveAction("mark_attendance", err)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Str("status", string(status)).Msg("mark attendance failed")
		return nil, fmt.Errorf("mark attendance: %w", err)
	}
	s.logger.Info().Str("user_id", user.ID).Str("status", string(status)).Msg("attendance marked")
	return rec, nil
}

// TodayAttendance reports whether the current user has marked today.
func (s *WorkforceService) TodayAttendance(ctx context.Context) (*domain.TodayAttendance, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, fmt.Errorf("today attendance: %w", err)
	}
	today, err := s.backend.TodayAttendance(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("today attendance: %w", err)
	}
	return today, nil
}

// AttendanceHistory returns the current user's most recent records, at most
// seven, in backend order.
func (s *WorkforceService) AttendanceHistory(ctx context.Context) ([]domain.AttendanceRecord, error) {
	records, err := s.allAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	if len(records) > attendanceHistoryLimit {
		records = records[:attendanceHistoryLimit]
	}
	return records, nil
}

// AttendanceStats returns the backend's counters for the current user.
func (s *WorkforceService) AttendanceStats(ctx context.Context) (domain.AttendanceStats, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, fmt.Errorf("attendance stats: %w", err)
	}
	stats, err := s.backend.AttendanceStats(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("attendance stats: %w", err)
	}
	return stats, nil
}

// ExportAttendance renders the current user's attendance as CSV. date, when
// set, is YYYY-MM-DD and keeps only records of that calendar day in loc.
func (s *WorkforceService) ExportAttendance(ctx context.Context, date string, loc *time.Location) (*AttendanceExport, error) {
	if loc == nil {
		loc = time.UTC
	}
	var day time.Time
	if date != "" {
		var err error
		day, err = time.ParseInLocation(time.DateOnly, date, loc)
		if err != nil {
			return nil, fmt.Errorf("export attendance: %w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}

	records, err := s.allAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("export attendance: %w", err)
	}
	if date != "" {
		kept := records[:0:0]
		for _, r := range records {
			if sameDay(r.Date.In(loc), day) {
				kept = append(kept, r)
			}
		}
		records = kept
	}

	out, err := ExportAttendanceCSV(records, date, loc)
	metrics.ObserveAction("export_attendance", err)
	if err != nil {
		return nil, fmt.Errorf("export attendance: %w", err)
	}
	s.logger.Info().Int("rows", out.Rows).Str("file", out.Filename).Msg("attendance exported")
	return out, nil
}

func (s *WorkforceService) allAttendance(ctx context.Context) ([]domain.AttendanceRecord, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	return s.backend.AttendanceHistory(ctx, user.ID)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ── Leaves ────────────────────────────────────────────────────────────────────

// ListLeaves returns one page of the current user's leave requests. Pages
// start at 1 and default to five entries.
func (s *WorkforceService) ListLeaves(ctx context.Context, page, limit int) (*domain.LeavePage, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLeavePageSize
	}
	res, err := s.backend.ListLeaves(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return res, nil
}

// SubmitLeave files a leave request. All fields are required and the range
// may not end before it starts.
func (s *WorkforceService) SubmitLeave(ctx context.Context, in ports.LeaveInput) error {
	if _, err := s.requireUser(); err != nil {
		return fmt.Errorf("submit leave: %w", err)
	}
	in.Reason = strings.TrimSpace(in.Reason)
	switch {
	case in.Reason == "":
		return fmt.Errorf("submit leave: %w: reason is required", domain.ErrInvalidInput)
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return fmt.Errorf("submit leave: %w: start and end dates are required", domain.ErrInvalidInput)
	case in.EndDate.Before(in.StartDate):
		return fmt.Errorf("submit leave: %w: end date is before start date", domain.ErrInvalidInput)
	}

	err := s.backend.SubmitLeave(ctx, in)
	metrics.ObserveAction("submit_leave", err)
	if err != nil {
		s.logger.Error().Err(err).Msg("submit leave failed")
		return fmt.Errorf("submit leave: %w", err)
	}
	return nil
}

// CancelLeave withdraws one of the current user's requests.
func (s *WorkforceService) CancelLeave(ctx context.Context, id string) error {
	if _, err := s.requireUser(); err != nil {
		return fmt.Errorf("cancel leave: %w", err)
	}
	if id == "" {
		return fmt.Errorf("cancel leave: %w: empty id", domain.ErrInvalidInput)
	}
	err := s.backend.CancelLeave(ctx, id)
	metrics.ObserveAction("cancel_leave", err)
	if err != nil {
		return fmt.Errorf("cancel leave: %w", err)
	}
	return nil
}

// ── Admin ─────────────────────────────────────────────────────────────────────

// RegisterUser creates an account. Only admins may call it.
func (s *WorkforceService) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (*domain.UserProfile, error) {
	if _, err := s.requireAdmin(); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	if in.Role == "" {
		in.Role = domain.RoleEmployee
	}
	if in.Role != domain.RoleAdmin && in.Role != domain.RoleEmployee {
		return nil, fmt.Errorf("register user: %w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}

	user, err := s.backend.RegisterUser(ctx, in)
	metrics.ObserveAction("register_user", err)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// ValidateProfileImage accepts image content types up to 5 MB.
func ValidateProfileImage(img ports.ImageUpload) error {
	if !strings.HasPrefix(img.ContentType, "image/") {
		return fmt.Errorf("%w: please select an image file", domain.ErrInvalidInput)
	}
	if img.Size > maxProfileImageBytes {
		return fmt.Errorf("%w: image size must be less than 5MB", domain.ErrInvalidInput)
	}
	return nil
}

// UploadProfileImage attaches a profile image to userID.
func (s *WorkforceService) UploadProfileImage(ctx context.Context, userID string, img ports.ImageUpload) error {
	if _, err := s.requireAdmin(); err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	if userID == "" {
		return fmt.Errorf("upload image: %w: empty user id", domain.ErrInvalidInput)
	}
	if err := ValidateProfileImage(img); err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	err := s.backend.UploadProfileImage(ctx, userID, img)
	metrics.ObserveAction("upload_image", err)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	return nil
}

// DeleteAllUsers removes every employee account once confirmed.
func (s *WorkforceService) DeleteAllUsers(ctx context.Context, c ports.Confirmer) (string, error) {
	return s.destructive(ctx, "delete_users", PromptDeleteUsers, c, s.backend.DeleteAllUsers)
}

// DeleteAllAttendance removes every attendance record once confirmed.
func (s *WorkforceService) DeleteAllAttendance(ctx context.Context, c ports.Confirmer) (string, error) {
	return s.destructive(ctx, "delete_attendance", PromptDeleteAttendance, c, s.backend.DeleteAllAttendance)
}

// DeleteAllLeaves removes every leave request once confirmed.
func (s *WorkforceService) DeleteAllLeaves(ctx context.Context, c ports.Confirmer) (string, error) {
	return s.destructive(ctx, "delete_leaves", PromptDeleteLeaves, c, s.backend.DeleteAllLeaves)
}

// ResetSystem wipes attendance, leaves and every other user once confirmed.
func (s *WorkforceService) ResetSystem(ctx context.Context, c ports.Confirmer) error {
	_, err := s.destructive(ctx, "reset_system", PromptResetSystem, c, func(ctx context.Context) (string, error) {
		return "System Reset Complete", s.backend.ResetSystem(ctx)
	})
	return err
}

func (s *WorkforceService) destructive(ctx context.Context, action, prompt string, c ports.Confirmer, call func(context.Context) (string, error)) (string, error) {
	user, err := s.requireAdmin()
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}
	if c == nil || !c.Confirm(prompt) {
		metrics.ActionsTotal.WithLabelValues(action, "declined").Inc()
		return "", fmt.Errorf("%s: %w", action, domain.ErrNotConfirmed)
	}

	msg, err := call(ctx)
	metrics.ObserveAction(action, err)
	if err != nil {
		s.logger.Error().Err(err).Str("action", action).Str("admin_id", user.ID).Msg("destructive action failed")
		return "", fmt.Errorf("%s: %w", action, err)
	}
	s.logger.Warn().Str("action", action).Str("admin_id", user.ID).Msg("destructive action completed")
	return msg, nil
}

func (s *WorkforceService) requireUser() (*domain.UserProfile, error) {
	user := s.sessions.CurrentUser()
	if user == nil {
		return nil, domain.ErrNoSession
	}
	return user, nil
}

func (s *WorkforceService) requireAdmin() (*domain.UserProfile, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
