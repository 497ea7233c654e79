package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/metrics"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/sse"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
)

const eventNotification = "notification"

type service struct {
	repo notification.Repository
	hub  *sse.Hub
}

// NewNotificationService creates a notification service that stores
// notifications and pushes them to open streams of the recipient.
func NewNotificationService(repo notification.Repository, hub *sse.Hub) notification.Service {
	return &service{
		repo: repo,
		hub:  hub,
	}
}

// Notify stores a notification and publishes it to the recipient's streams.
func (s *service) Notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	if validator.IsEmpty(req.RecipientID) {
		return notification.ErrRecipientRequired
	}

	created, err := s.repo.Create(ctx, notification.Notification{
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	metrics.NotificationsTotal.WithLabelValues(string(created.Type)).Inc()

	s.hub.Publish(created.RecipientID, sse.Event{
		Event: eventNotification,
		Data:  notification.NewNotificationResponse(created),
	})
	slog.Debug("notification sent", "notification_id", created.ID, "recipient_id", created.RecipientID, "type", created.Type)
	return nil
}

// GetNotifications lists a recipient's notifications, newest first
func (s *service) GetNotifications(ctx context.Context, recipientID string, unreadOnly bool) (notification.NotificationListResponse, error) {
	notifications, err := s.repo.GetByRecipient(ctx, recipientID, unreadOnly)
	if err != nil {
		return notification.NotificationListResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return notification.NotificationListResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.NewNotificationResponse(n)
	}

	return notification.NotificationListResponse{
		Notifications: responses,
		Total:         len(responses),
		UnreadCount:   unreadCount,
	}, nil
}

// MarkAsRead marks the given notifications as read. None of them belonging
// to the recipient is reported as not found.
func (s *service) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	found, err := s.repo.MarkAsRead(ctx, req.NotificationIDs, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	if found == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead marks all notifications as read for a recipient
func (s *service) MarkAllAsRead(ctx context.Context, recipientID string) error {
	if err := s.repo.MarkAllAsRead(ctx, recipientID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

// Subscribe creates an SSE subscription for a recipient. The returned channel
// closes when ctx is done or cleanup is called.
func (s *service) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(recipientID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}
