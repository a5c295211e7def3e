package api

import (
	"context"
	"net/http"
)

// Notification is an unread message for the bell dropdown.
type Notification struct {
	ID        int64    `json:"id"`
	Content   string   `json:"tresc"`
	Read      bool     `json:"przeczytane"`
	CreatedAt DateTime `json:"dataUtworzenia"`
}

// ListNotifications fetches the user's unread notifications.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllNotificationsRead clears the unread set, as closing the dropdown does.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/markAllAsRead", nil, nil)
}
