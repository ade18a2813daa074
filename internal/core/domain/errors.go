package domain

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("access forbidden")
	ErrNotFound         = errors.New("resource not found")
	ErrNoSession        = errors.New("no active session")
	ErrBootstrapPending = errors.New("session bootstrap in progress")
	ErrNotConfirmed     = errors.New("action not confirmed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyMarked    = errors.New("attendance already marked today")
	ErrNoAttendanceData = errors.New("no attendance data to export")
	ErrRateLimited      = errors.New("too many requests")
)
