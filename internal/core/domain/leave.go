package domain

import (
	"encoding/json"
	"time"
)

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

// LeaveRequest is a single leave application.
type LeaveRequest struct {
	ID        string      `json:"id"`
	Reason    string      `json:"reason"`
	StartDate time.Time   `json:"startDate"`
	EndDate   time.Time   `json:"endDate"`
	Status    LeaveStatus `json:"status"`
}

func (l *LeaveRequest) UnmarshalJSON(data []byte) error {
	type plain LeaveRequest
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = LeaveRequest(raw.plain)
	if l.ID == "" {
		l.ID = raw.MongoID
	}
	return nil
}

// Pagination mirrors the backend's paging metadata.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// LeavePage is one page of the caller's leave requests.
type LeavePage struct {
	Items      []LeaveRequest `json:"items"`
	Pagination Pagination     `json:"pagination"`
}
