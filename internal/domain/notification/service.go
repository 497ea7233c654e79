package notification

import (
	"context"
)

// Notifier is the narrow dependency other services use to raise notifications.
type Notifier interface {
	Notify(ctx context.Context, req CreateNotificationRequest) error
}

// Service defines the notification service interface
type Service interface {
	Notifier

	GetNotifications(ctx context.Context, recipientID string, unreadOnly bool) (NotificationListResponse, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error

	// SSE subscription
	Subscribe(ctx context.Context, recipientID string) (<-chan SSEEvent, func())
}
