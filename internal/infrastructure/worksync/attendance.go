package worksync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/worksync/session-agent/internal/core/domain"
)

type markAttendanceRequest struct {
	UserID string                  `json:"userId"`
	Status domain.AttendanceStatus `json:"status"`
}

func (c *Client) MarkAttendance(ctx context.Context, userID string, status domain.AttendanceStatus) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	if err := c.call(ctx, http.MethodPost, "/api/attendance/mark", markAttendanceRequest{UserID: userID, Status: status}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) TodayAttendance(ctx context.Context, userID string) (*domain.TodayAttendance, error) {
	var today domain.TodayAttendance
	if err := c.call(ctx, http.MethodGet, "/api/attendance/today/"+url.PathEscape(userID), nil, &today); err != nil {
		return nil, err
	}
	return &today, nil
}

// AttendanceHistory returns the user's records in backend order. Anything
// other than a JSON array is treated as no records.
func (c *Client) AttendanceHistory(ctx context.Context, userID string) ([]domain.AttendanceRecord, error) {
	var raw json.RawMessage
	if err := c.call(ctx, http.MethodGet, "/api/attendance/user/"+url.PathEscape(userID), nil, &raw); err != nil {
		return nil, err
	}
	if !isJSONArray(raw) {
		return []domain.AttendanceRecord{}, nil
	}
	var records []domain.AttendanceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) AttendanceStats(ctx context.Context, userID string) (domain.AttendanceStats, error) {
	stats := domain.AttendanceStats{}
	if err := c.call(ctx, http.MethodGet, "/api/attendance/stats/"+url.PathEscape(userID), nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
