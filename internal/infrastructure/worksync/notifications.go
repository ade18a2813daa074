package worksync

import (
	"context"
	"net/http"
	"net/url"

	"github.com/worksync/session-agent/internal/core/domain"
)

func (c *Client) ListNotifications(ctx context.Context) ([]domain.NotificationItem, error) {
	var items []domain.NotificationItem
	if err := c.call(ctx, http.MethodGet, "/api/notifications", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(id)+"/read", struct{}{}, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.call(ctx, http.MethodPut, "/api/notifications/mark-all-read", struct{}{}, nil)
}

func (c *Client) ClearNotifications(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/api/notifications/clear-all", nil, nil)
}
