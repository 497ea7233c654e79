package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRecipientRequired    = errors.New("notification recipient is required")
)
