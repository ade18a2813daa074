package domain

import (
	"encoding/json"
	"time"
)

// NotificationType classifies how a notification should be presented.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// NotificationItem is a single entry in the signed-in user's inbox.
type NotificationItem struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Link      string           `json:"link,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (n *NotificationItem) UnmarshalJSON(data []byte) error {
	type plain NotificationItem
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = NotificationItem(raw.plain)
	if n.ID == "" {
		n.ID = raw.MongoID
	}
	return nil
}

// UnreadCount is always derived from the collection, never stored.
func UnreadCount(items []NotificationItem) int {
	count := 0
	for _, n := range items {
		if !n.IsRead {
			count++
		}
	}
	return count
}
