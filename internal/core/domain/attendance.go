package domain

import (
	"encoding/json"
	"time"
)

// AttendanceStatus is the state recorded for one working day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceHalfDay AttendanceStatus = "Half-day"
	AttendanceLeave   AttendanceStatus = "Leave"
)

// Valid reports whether s is one of the statuses the backend accepts.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLeave:
		return true
	}
	return false
}

// AttendanceUser is the populated user reference embedded in attendance logs.
type AttendanceUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AttendanceRecord is one attendance log entry.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	User       *AttendanceUser  `json:"userId,omitempty"`
	Date       time.Time        `json:"date"`
	Status     AttendanceStatus `json:"status"`
	ModifiedBy string           `json:"modifiedBy,omitempty"`
}

func (a *AttendanceRecord) UnmarshalJSON(data []byte) error {
	type plain AttendanceRecord
	var raw struct {
		plain
		MongoID string          `json:"_id"`
		UserRef json.RawMessage `json:"userId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = AttendanceRecord(raw.plain)
	if a.ID == "" {
		a.ID = raw.MongoID
	}
	// userId is either a populated object or a bare id string.
	a.User = nil
	if len(raw.UserRef) > 0 && raw.UserRef[0] == '{' {
		var u AttendanceUser
		if err := json.Unmarshal(raw.UserRef, &u); err != nil {
			return err
		}
		a.User = &u
	}
	return nil
}

// TodayAttendance is the backend answer to "has this user marked today".
type TodayAttendance struct {
	HasAttendance bool              `json:"hasAttendance"`
	Attendance    *AttendanceRecord `json:"attendance,omitempty"`
}

// AttendanceStats holds the per-user counters shown on the dashboard. The
// backend owns the set of keys.
type AttendanceStats map[string]any
