package worksync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

type leavePageResponse struct {
	Data       []domain.LeaveRequest `json:"data"`
	Pagination *domain.Pagination    `json:"pagination"`
}

// ListLeaves accepts both the paginated envelope and a bare array. Without
// pagination metadata the result is reported as a single page.
func (c *Client) ListLeaves(ctx context.Context, page, limit int) (*domain.LeavePage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var raw json.RawMessage
	if err := c.call(ctx, http.MethodGet, "/api/leaves?"+q.Encode(), nil, &raw); err != nil {
		return nil, err
	}

	if isJSONArray(raw) {
		var items []domain.LeaveRequest
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode leaves: %w", err)
		}
		return &domain.LeavePage{
			Items:      items,
			Pagination: domain.Pagination{Page: 1, Limit: len(items), Total: int64(len(items)), Pages: 1},
		}, nil
	}

	var res leavePageResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode leaves: %w", err)
	}
	out := &domain.LeavePage{Items: res.Data}
	if out.Items == nil {
		out.Items = []domain.LeaveRequest{}
	}
	if res.Pagination != nil {
		out.Pagination = *res.Pagination
	} else {
		out.Pagination = domain.Pagination{Page: page, Limit: limit, Total: int64(len(out.Items)), Pages: 1}
	}
	return out, nil
}

type leaveRequest struct {
	Reason    string `json:"reason"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SubmitLeave sends dates as calendar days, the format of a date input.
func (c *Client) SubmitLeave(ctx context.Context, in ports.LeaveInput) error {
	body := leaveRequest{
		Reason:    in.Reason,
		StartDate: in.StartDate.Format(time.DateOnly),
		EndDate:   in.EndDate.Format(time.DateOnly),
	}
	return c.call(ctx, http.MethodPost, "/api/leaves", body, nil)
}

func (c *Client) CancelLeave(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/leaves/"+url.PathEscape(id), nil, nil)
}

func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
