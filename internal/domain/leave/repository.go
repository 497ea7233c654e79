package leave

import (
	"context"
)

// LeaveApplicationRepository - interface for leave applications
type LeaveApplicationRepository interface {
	Create(ctx context.Context, application LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id string) (LeaveApplication, error)
	GetByStaffID(ctx context.Context, staffID string) ([]LeaveApplication, error)
	List(ctx context.Context, status *LeaveApplicationStatus) ([]LeaveApplication, error)
	// UpdateIfStatus applies fn only while the application is still in status
	// from, and returns the stored result.
	UpdateIfStatus(ctx context.Context, id string, from LeaveApplicationStatus, fn func(*LeaveApplication) error) (LeaveApplication, error)
}
