package service

import (
	"context"
	"sync"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

type stubStorage struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
	delErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{data: make(map[string]string)}
}

func (s *stubStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return v, nil
}

func (s *stubStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *stubStorage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delErr != nil {
		return s.delErr
	}
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *stubStorage) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// stubBackend implements ports.Backend with overridable funcs and counts
// every call by name.
type stubBackend struct {
	mu    sync.Mutex
	calls map[string]int

	loginFn       func(email, password string) (*ports.LoginResult, error)
	currentUserFn func(ctx context.Context, token string) (*domain.UserProfile, error)

	listFn     func(ctx context.Context) ([]domain.NotificationItem, error)
	markReadFn func(id string) error
	markAllErr error
	clearErr   error

	today      *domain.TodayAttendance
	todayErr   error
	markErr    error
	history    []domain.AttendanceRecord
	historyErr error
	stats      domain.AttendanceStats

	leavePage     *domain.LeavePage
	lastPage      [2]int
	submitted     []ports.LeaveInput
	cancelErr     error
	registered    []ports.RegisterUserInput
	uploaded      []string
	adminErr      error
	adminMessage  string
	resetErr      error
	lastMarkState domain.AttendanceStatus
}

func newStubBackend() *stubBackend {
	return &stubBackend{calls: make(map[string]int)}
}

func (b *stubBackend) hit(name string) {
	b.mu.Lock()
	b.calls[name]++
	b.mu.Unlock()
}

func (b *stubBackend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[name]
}

func (b *stubBackend) Login(_ context.Context, email, password string, _ bool) (*ports.LoginResult, error) {
	b.hit("Login")
	if b.loginFn != nil {
		return b.loginFn(email, password)
	}
	return nil, domain.ErrUnauthorized
}

func (b *stubBackend) CurrentUser(ctx context.Context, token string) (*domain.UserProfile, error) {
	b.hit("CurrentUser")
	if b.currentUserFn != nil {
		return b.currentUserFn(ctx, token)
	}
	return nil, domain.ErrUnauthorized
}

func (b *stubBackend) ListNotifications(ctx context.Context) ([]domain.NotificationItem, error) {
	b.hit("ListNotifications")
	if b.listFn != nil {
		return b.listFn(ctx)
	}
	return nil, nil
}

func (b *stubBackend) MarkNotificationRead(_ context.Context, id string) error {
	b.hit("MarkNotificationRead")
	if b.markReadFn != nil {
		return b.markReadFn(id)
	}
	return nil
}

func (b *stubBackend) MarkAllNotificationsRead(context.Context) error {
	b.hit("MarkAllNotificationsRead")
	return b.markAllErr
}

func (b *stubBackend) ClearNotifications(context.Context) error {
	b.hit("ClearNotifications")
	return b.clearErr
}

func (b *stubBackend) MarkAttendance(_ context.Context, userID string, status domain.AttendanceStatus) (*domain.AttendanceRecord, error) {
	b.hit("MarkAttendance")
	if b.markErr != nil {
		return nil, b.markErr
	}
	b.lastMarkState = status
	return &domain.AttendanceRecord{ID: "a1", Status: status}, nil
}

func (b *stubBackend) TodayAttendance(context.Context, string) (*domain.TodayAttendance, error) {
	b.hit("TodayAttendance")
	if b.todayErr != nil {
		return nil, b.todayErr
	}
	if b.today == nil {
		return &domain.TodayAttendance{}, nil
	}
	return b.today, nil
}

func (b *stubBackend) AttendanceHistory(context.Context, string) ([]domain.AttendanceRecord, error) {
	b.hit("AttendanceHistory")
	return b.history, b.historyErr
}

func (b *stubBackend) AttendanceStats(context.Context, string) (domain.AttendanceStats, error) {
	b.hit("AttendanceStats")
	return b.stats, nil
}

func (b *stubBackend) ListLeaves(_ context.Context, page, limit int) (*domain.LeavePage, error) {
	b.hit("ListLeaves")
	b.lastPage = [2]int{page, limit}
	if b.leavePage == nil {
		return &domain.LeavePage{}, nil
	}
	return b.leavePage, nil
}

func (b *stubBackend) SubmitLeave(_ context.Context, in ports.LeaveInput) error {
	b.hit("SubmitLeave")
	b.submitted = append(b.submitted, in)
	return nil
}

func (b *stubBackend) CancelLeave(context.Context, string) error {
	b.hit("CancelLeave")
	return b.cancelErr
}

func (b *stubBackend) RegisterUser(_ context.Context, in ports.RegisterUserInput) (*domain.UserProfile, error) {
	b.hit("RegisterUser")
	b.registered = append(b.registered, in)
	return &domain.UserProfile{ID: "new", Name: in.Name, Email: in.Email, Role: in.Role}, nil
}

func (b *stubBackend) UploadProfileImage(_ context.Context, userID string, _ ports.ImageUpload) error {
	b.hit("UploadProfileImage")
	b.uploaded = append(b.uploaded, userID)
	return nil
}

func (b *stubBackend) DeleteAllUsers(context.Context) (string, error) {
	b.hit("DeleteAllUsers")
	return b.adminMessage, b.adminErr
}

func (b *stubBackend) DeleteAllAttendance(context.Context) (string, error) {
	b.hit("DeleteAllAttendance")
	return b.adminMessage, b.adminErr
}

func (b *stubBackend) DeleteAllLeaves(context.Context) (string, error) {
	b.hit("DeleteAllLeaves")
	return b.adminMessage, b.adminErr
}

func (b *stubBackend) ResetSystem(context.Context) error {
	b.hit("ResetSystem")
	return b.resetErr
}

type stubHost struct {
	accept    bool
	prompts   []string
	alerts    []string
	navigated []string
	closed    int
}

func (h *stubHost) Confirm(prompt string) bool {
	h.prompts = append(h.prompts, prompt)
	return h.accept
}

func (h *stubHost) Alert(message string) { h.alerts = append(h.alerts, message) }
func (h *stubHost) Navigate(link string) { h.navigated = append(h.navigated, link) }
func (h *stubHost) Close()               { h.closed++ }

type fixedUser struct{ user *domain.UserProfile }

func (f fixedUser) CurrentUser() *domain.UserProfile { return f.user.Clone() }

var (
	_ ports.Backend = (*stubBackend)(nil)
	_ ports.Host    = (*stubHost)(nil)
)
