package memory

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
)

type notificationRepositoryImpl struct {
	notifications *table[notification.Notification]
}

func NewNotificationRepository() notification.Repository {
	return &notificationRepositoryImpl{notifications: newTable(cloneNotification)}
}

// Create implements notification.Repository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if n.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return notification.Notification{}, err
		}
		n.ID = id.String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications.insert(n.ID, n)
	return cloneNotification(n), nil
}

// GetByRecipient implements notification.Repository. Newest notifications come first.
func (r *notificationRepositoryImpl) GetByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
	out := r.notifications.list(func(n notification.Notification) bool {
		return n.RecipientID == recipientID && (!unreadOnly || !n.IsRead)
	})
	slices.Reverse(out)
	return out, nil
}

// GetUnreadCount implements notification.Repository.
func (r *notificationRepositoryImpl) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	unread, err := r.GetByRecipient(ctx, recipientID, true)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

// MarkAsRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, ids []string, recipientID string) (int, error) {
	now := time.Now()
	found := 0
	for _, id := range ids {
		err := r.notifications.update(id, func(n *notification.Notification) error {
			if n.RecipientID != recipientID {
				return ErrNoRows
			}
			if !n.IsRead {
				n.IsRead = true
				n.ReadAt = &now
			}
			return nil
		})
		if err == nil {
			found++
		}
	}
	return found, nil
}

// MarkAllAsRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, recipientID string) error {
	unread, err := r.GetByRecipient(ctx, recipientID, true)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(unread))
	for _, n := range unread {
		ids = append(ids, n.ID)
	}
	_, err = r.MarkAsRead(ctx, ids, recipientID)
	return err
}

func cloneNotification(n notification.Notification) notification.Notification {
	n.Data = maps.Clone(n.Data)
	if n.ReadAt != nil {
		t := *n.ReadAt
		n.ReadAt = &t
	}
	return n
}
