package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
	"github.com/worksync/session-agent/internal/core/service"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// --- session ---

type stubSessions struct {
	state          service.SessionState
	authenticateFn func(email, password string, remember bool) (*domain.UserProfile, error)
	logoutErr      error
	logouts        int
	expiry         time.Time
}

func (s *stubSessions) State() service.SessionState { return s.state }

func (s *stubSessions) Authenticate(_ context.Context, email, password string, remember bool) (*domain.UserProfile, error) {
	return s.authenticateFn(email, password, remember)
}

func (s *stubSessions) Logout(context.Context) error {
	s.logouts++
	return s.logoutErr
}

func (s *stubSessions) TokenExpiry(context.Context) (time.Time, bool) {
	return s.expiry, !s.expiry.IsZero()
}

// --- notifications ---

type stubNotifications struct {
	snapshot   service.NotificationSnapshot
	refreshErr error
	markReadFn func(id, link string, host ports.Host) error
	markAllErr error
	clearFn    func(host ports.Host) error
}

func (s *stubNotifications) Snapshot() service.NotificationSnapshot { return s.snapshot }

func (s *stubNotifications) Refresh(context.Context) error { return s.refreshErr }

func (s *stubNotifications) MarkRead(_ context.Context, id, link string, host ports.Host) error {
	return s.markReadFn(id, link, host)
}

func (s *stubNotifications) MarkAllRead(context.Context) error { return s.markAllErr }

func (s *stubNotifications) ClearAll(_ context.Context, host ports.Host) error {
	return s.clearFn(host)
}

// --- workforce ---

type stubWorkforce struct {
	markFn   func(status domain.AttendanceStatus) (*domain.AttendanceRecord, error)
	today    *domain.TodayAttendance
	history  []domain.AttendanceRecord
	stats    domain.AttendanceStats
	exportFn func(date string) (*service.AttendanceExport, error)

	lastPage  [2]int
	submitted []ports.LeaveInput
	cancelled []string

	registered []ports.RegisterUserInput
	uploaded   []ports.ImageUpload
	prompts    []string
	resetErr   error
}

func (s *stubWorkforce) MarkAttendance(_ context.Context, status domain.AttendanceStatus) (*domain.AttendanceRecord, error) {
	return s.markFn(status)
}

func (s *stubWorkforce) TodayAttendance(context.Context) (*domain.TodayAttendance, error) {
	return s.today, nil
}

func (s *stubWorkforce) AttendanceHistory(context.Context) ([]domain.AttendanceRecord, error) {
	return s.history, nil
}

func (s *stubWorkforce) AttendanceStats(context.Context) (domain.AttendanceStats, error) {
	return s.stats, nil
}

func (s *stubWorkforce) ExportAttendance(_ context.Context, date string, _ *time.Location) (*service.AttendanceExport, error) {
	return s.exportFn(date)
}

func (s *stubWorkforce) ListLeaves(_ context.Context, page, limit int) (*domain.LeavePage, error) {
	s.lastPage = [2]int{page, limit}
	return &domain.LeavePage{}, nil
}

func (s *stubWorkforce) SubmitLeave(_ context.Context, in ports.LeaveInput) error {
	s.submitted = append(s.submitted, in)
	return nil
}

func (s *stubWorkforce) CancelLeave(_ context.Context, id string) error {
	s.cancelled = append(s.cancelled, id)
	return nil
}

func (s *stubWorkforce) RegisterUser(_ context.Context, in ports.RegisterUserInput) (*domain.UserProfile, error) {
	s.registered = append(s.registered, in)
	return &domain.UserProfile{ID: "new", Name: in.Name, Email: in.Email, Role: in.Role}, nil
}

func (s *stubWorkforce) UploadProfileImage(_ context.Context, _ string, img ports.ImageUpload) error {
	s.uploaded = append(s.uploaded, img)
	return nil
}

func (s *stubWorkforce) confirm(c ports.Confirmer, prompt string) error {
	s.prompts = append(s.prompts, prompt)
	if !c.Confirm(prompt) {
		return domain.ErrNotConfirmed
	}
	return nil
}

func (s *stubWorkforce) DeleteAllUsers(_ context.Context, c ports.Confirmer) (string, error) {
	if err := s.confirm(c, service.PromptDeleteUsers); err != nil {
		return "", err
	}
	return "Deleted 3 users", nil
}

func (s *stubWorkforce) DeleteAllAttendance(_ context.Context, c ports.Confirmer) (string, error) {
	if err := s.confirm(c, service.PromptDeleteAttendance); err != nil {
		return "", err
	}
	return "Deleted 10 attendance records", nil
}

func (s *stubWorkforce) DeleteAllLeaves(_ context.Context, c ports.Confirmer) (string, error) {
	if err := s.confirm(c, service.PromptDeleteLeaves); err != nil {
		return "", err
	}
	return "Deleted 4 leaves", nil
}

func (s *stubWorkforce) ResetSystem(_ context.Context, c ports.Confirmer) error {
	if err := s.confirm(c, service.PromptResetSystem); err != nil {
		return err
	}
	return s.resetErr
}
