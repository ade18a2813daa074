package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

var admin = domain.UserProfile{ID: "a1", Name: "Root", Role: domain.RoleAdmin}

func newWorkforce(backend *stubBackend, user *domain.UserProfile) *WorkforceService {
	return NewWorkforceService(backend, fixedUser{user: user}, zerolog.Nop())
}

func TestWorkforce_RequiresSession(t *testing.T) {
	svc := newWorkforce(newStubBackend(), nil)
	if _, err := svc.MarkAttendance(context.Background(), domain.AttendancePresent); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := svc.ListLeaves(context.Background(), 1, 5); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestWorkforce_MarkAttendance(t *testing.T) {
	backend := newStubBackend()
	svc := newWorkforce(backend, &alice)

	rec, err := svc.MarkAttendance(context.Background(), domain.AttendanceHalfDay)
	if err != nil {
		t.Fatalf("MarkAttendance returned error: %v", err)
	}
	if rec.Status != domain.AttendanceHalfDay || backend.lastMarkState != domain.AttendanceHalfDay {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestWorkforce_MarkAttendanceTwice(t *testing.T) {
	backend := newStubBackend()
	backend.today = &domain.TodayAttendance{HasAttendance: true, Attendance: &domain.AttendanceRecord{ID: "x", Status: domain.AttendancePresent}}
	svc := newWorkforce(backend, &alice)

	rec, err := svc.MarkAttendance(context.Background(), domain.AttendancePresent)
	if !errors.Is(err, domain.ErrAlreadyMarked) {
		t.Fatalf("expected ErrAlreadyMarked, got %v", err)
	}
	if rec == nil || rec.ID != "x" {
		t.Fatalf("expected today's record to be returned, got %+v", rec)
	}
	if backend.count("MarkAttendance") != 0 {
		t.Fatalf("must not write a second mark")
	}
}

func TestWorkforce_MarkAttendanceInvalidStatus(t *testing.T) {
	backend := newStubBackend()
	svc := newWorkforce(backend, &alice)
	if _, err := svc.MarkAttendance(context.Background(), "Vacation"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if backend.count("TodayAttendance") != 0 {
		t.Fatalf("invalid status must not reach the backend")
	}
}

func TestWorkforce_HistoryLimited(t *testing.T) {
	backend := newStubBackend()
	for i := range 10 {
		backend.history = append(backend.history, domain.AttendanceRecord{ID: string(rune('a' + i))})
	}
	svc := newWorkforce(backend, &alice)

	got, err := svc.AttendanceHistory(context.Background())
	if err != nil {
		t.Fatalf("AttendanceHistory returned error: %v", err)
	}
	if len(got) != 7 || got[0].ID != "a" {
		t.Fatalf("expected first 7 records, got %d", len(got))
	}
}

func TestWorkforce_ExportFiltersByDate(t *testing.T) {
	backend := newStubBackend()
	backend.history = []domain.AttendanceRecord{
		{Date: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), Status: domain.AttendancePresent},
		{Date: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC), Status: domain.AttendanceAbsent},
	}
	svc := newWorkforce(backend, &alice)

	out, err := svc.ExportAttendance(context.Background(), "2024-03-06", time.UTC)
	if err != nil {
		t.Fatalf("ExportAttendance returned error: %v", err)
	}
	if out.Rows != 1 || !strings.Contains(string(out.Content), `"Absent"`) {
		t.Fatalf("unexpected export: %s", out.Content)
	}

	if _, err := svc.ExportAttendance(context.Background(), "2024-04-01", time.UTC); !errors.Is(err, domain.ErrNoAttendanceData) {
		t.Fatalf("expected ErrNoAttendanceData, got %v", err)
	}
	if _, err := svc.ExportAttendance(context.Background(), "05/03/2024", time.UTC); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWorkforce_ListLeavesDefaults(t *testing.T) {
	backend := newStubBackend()
	svc := newWorkforce(backend, &alice)
	if _, err := svc.ListLeaves(context.Background(), 0, 0); err != nil {
		t.Fatalf("ListLeaves returned error: %v", err)
	}
	if backend.lastPage != [2]int{1, 5} {
		t.Fatalf("expected page 1 limit 5, got %v", backend.lastPage)
	}
}

func TestWorkforce_SubmitLeaveValidation(t *testing.T) {
	backend := newStubBackend()
	svc := newWorkforce(backend, &alice)
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	bad := []ports.LeaveInput{
		{Reason: "  ", StartDate: start, EndDate: start},
		{Reason: "trip", StartDate: start},
		{Reason: "trip", StartDate: start, EndDate: start.AddDate(0, 0, -1)},
	}
	for _, in := range bad {
		if err := svc.SubmitLeave(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
	if err := svc.SubmitLeave(context.Background(), ports.LeaveInput{Reason: " trip ", StartDate: start, EndDate: start}); err != nil {
		t.Fatalf("SubmitLeave returned error: %v", err)
	}
	if len(backend.submitted) != 1 || backend.submitted[0].Reason != "trip" {
		t.Fatalf("unexpected submissions %+v", backend.submitted)
	}
}

func TestWorkforce_AdminOnly(t *testing.T) {
	backend := newStubBackend()
	svc := newWorkforce(backend, &alice)
	host := &stubHost{accept: true}

	if _, err := svc.RegisterUser(context.Background(), ports.RegisterUserInput{Name: "Bob"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.DeleteAllUsers(context.Background(), host); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(host.prompts) != 0 || backend.count("DeleteAllUsers") != 0 {
		t.Fatalf("non-admins must not be prompted or reach the backend")
	}
}

func TestWorkforce_RegisterUserDefaultsRole(t *testing.T) {
	backend := newStubBackend()
	svc := newWorkforce(backend, &admin)

	user, err := svc.RegisterUser(context.Background(), ports.RegisterUserInput{Name: "Bob", Email: "bob@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("RegisterUser returned error: %v", err)
	}
	if user.Role != domain.RoleEmployee {
		t.Fatalf("expected Employee role, got %s", user.Role)
	}
	if _, err := svc.RegisterUser(context.Background(), ports.RegisterUserInput{Name: "Eve", Role: "Owner"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestWorkforce_UploadProfileImage(t *testing.T) {
	backend := newStubBackend()
	svc := newWorkforce(backend, &admin)
	ctx := context.Background()

	pdf := ports.ImageUpload{Filename: "cv.pdf", ContentType: "application/pdf", Size: 10, Body: strings.NewReader("x")}
	if err := svc.UploadProfileImage(ctx, "u1", pdf); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-image, got %v", err)
	}
	huge := ports.ImageUpload{Filename: "a.png", ContentType: "image/png", Size: 5*1024*1024 + 1, Body: strings.NewReader("x")}
	if err := svc.UploadProfileImage(ctx, "u1", huge); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversize image, got %v", err)
	}
	ok := ports.ImageUpload{Filename: "a.png", ContentType: "image/png", Size: 1024, Body: strings.NewReader("x")}
	if err := svc.UploadProfileImage(ctx, "u1", ok); err != nil {
		t.Fatalf("UploadProfileImage returned error: %v", err)
	}
	if len(backend.uploaded) != 1 || backend.uploaded[0] != "u1" {
		t.Fatalf("unexpected uploads %v", backend.uploaded)
	}
}

func TestWorkforce_DestructiveRequiresConfirmation(t *testing.T) {
	backend := newStubBackend()
	backend.adminMessage = "All employee accounts deleted"
	svc := newWorkforce(backend, &admin)
	ctx := context.Background()

	declined := &stubHost{accept: false}
	if _, err := svc.DeleteAllUsers(ctx, declined); !errors.Is(err, domain.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if err := svc.ResetSystem(ctx, nil); !errors.Is(err, domain.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed without a confirmer, got %v", err)
	}
	if backend.count("DeleteAllUsers") != 0 || backend.count("ResetSystem") != 0 {
		t.Fatalf("unconfirmed actions must not reach the backend")
	}

	accepted := &stubHost{accept: true}
	msg, err := svc.DeleteAllUsers(ctx, accepted)
	if err != nil || msg != "All employee accounts deleted" {
		t.Fatalf("unexpected result %q, %v", msg, err)
	}
	if accepted.prompts[0] != PromptDeleteUsers {
		t.Fatalf("unexpected prompt %q", accepted.prompts[0])
	}
	if err := svc.ResetSystem(ctx, accepted); err != nil {
		t.Fatalf("ResetSystem returned error: %v", err)
	}
}
