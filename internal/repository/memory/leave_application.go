package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
)

type leaveApplicationRepositoryImpl struct {
	applications *table[leave.LeaveApplication]
}

func NewLeaveApplicationRepository() leave.LeaveApplicationRepository {
	return &leaveApplicationRepositoryImpl{applications: newTable(cloneLeaveApplication)}
}

// Create implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, application leave.LeaveApplication) (leave.LeaveApplication, error) {
	if application.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveApplication{}, err
		}
		application.ID = id.String()
	}
	now := time.Now()
	if application.SubmittedAt.IsZero() {
		application.SubmittedAt = now
	}
	application.UpdatedAt = now
	r.applications.insert(application.ID, application)
	return cloneLeaveApplication(application), nil
}

// GetByID implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	return r.applications.get(id)
}

// GetByStaffID implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) GetByStaffID(ctx context.Context, staffID string) ([]leave.LeaveApplication, error) {
	return r.applications.list(func(a leave.LeaveApplication) bool {
		return a.StaffID == staffID
	}), nil
}

// List implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) List(ctx context.Context, status *leave.LeaveApplicationStatus) ([]leave.LeaveApplication, error) {
	if status == nil {
		return r.applications.list(nil), nil
	}
	return r.applications.list(func(a leave.LeaveApplication) bool {
		return a.Status == *status
	}), nil
}

// UpdateIfStatus implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) UpdateIfStatus(ctx context.Context, id string, from leave.LeaveApplicationStatus, fn func(*leave.LeaveApplication) error) (leave.LeaveApplication, error) {
	var updated leave.LeaveApplication
	err := r.applications.update(id, func(stored *leave.LeaveApplication) error {
		if stored.Status != from {
			return ErrStatusChanged
		}
		application := cloneLeaveApplication(*stored)
		if err := fn(&application); err != nil {
			return err
		}
		application.ID = stored.ID
		application.SubmittedAt = stored.SubmittedAt
		application.UpdatedAt = time.Now()
		*stored = application
		updated = cloneLeaveApplication(application)
		return nil
	})
	return updated, err
}

func cloneLeaveApplication(a leave.LeaveApplication) leave.LeaveApplication {
	a.DecidedBy = cloneStringPtr(a.DecidedBy)
	a.StaffName = cloneStringPtr(a.StaffName)
	a.SubstituteName = cloneStringPtr(a.SubstituteName)
	if a.DecidedAt != nil {
		t := *a.DecidedAt
		a.DecidedAt = &t
	}
	if a.SubstituteReleasedAt != nil {
		t := *a.SubstituteReleasedAt
		a.SubstituteReleasedAt = &t
	}
	return a
}
