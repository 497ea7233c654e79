package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeMentorAssigned NotificationType = "mentor_assigned"
	TypeMenteeAssigned NotificationType = "mentee_assigned"
	TypeLeaveApproved  NotificationType = "leave_approved"
	TypeLeaveRejected  NotificationType = "leave_rejected"

	TypeJobDescriptionSet NotificationType = "job_description_set"

	TypeSalaryApproved NotificationType = "salary_approved"
	TypeSalaryRejected NotificationType = "salary_rejected"

	TypeShortlistApproved NotificationType = "shortlist_approved"
	TypeShortlistRejected NotificationType = "shortlist_rejected"
)

// Notification is addressed to a profile: a staff ID for temporary staff or a
// mentor ID for mentors.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]any
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
