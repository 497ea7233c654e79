package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification Notification) (Notification, error)
	GetByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	// MarkAsRead marks the listed notifications owned by recipientID and
	// reports how many were found.
	MarkAsRead(ctx context.Context, ids []string, recipientID string) (int, error)
	MarkAllAsRead(ctx context.Context, recipientID string) error
}
