package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
)

type registrationRepositoryImpl struct {
	requests *table[staff.RegistrationRequest]
}

func NewRegistrationRepository() staff.RegistrationRepository {
	return &registrationRepositoryImpl{requests: newTable(cloneRegistration)}
}

// Create implements staff.RegistrationRepository.
func (r *registrationRepositoryImpl) Create(ctx context.Context, req staff.RegistrationRequest) (staff.RegistrationRequest, error) {
	if req.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return staff.RegistrationRequest{}, err
		}
		req.ID = id.String()
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now()
	}
	if req.Status == "" {
		req.Status = staff.RegistrationStatusPending
	}
	r.requests.insert(req.ID, req)
	return cloneRegistration(req), nil
}

// GetByID implements staff.RegistrationRepository.
func (r *registrationRepositoryImpl) GetByID(ctx context.Context, id string) (staff.RegistrationRequest, error) {
	return r.requests.get(id)
}

// List implements staff.RegistrationRepository.
func (r *registrationRepositoryImpl) List(ctx context.Context, status *staff.RegistrationStatus) ([]staff.RegistrationRequest, error) {
	if status == nil {
		return r.requests.list(nil), nil
	}
	return r.requests.list(func(req staff.RegistrationRequest) bool {
		return req.Status == *status
	}), nil
}

// UpdateIfStatus implements staff.RegistrationRepository.
func (r *registrationRepositoryImpl) UpdateIfStatus(ctx context.Context, id string, from staff.RegistrationStatus, fn func(*staff.RegistrationRequest) error) (staff.RegistrationRequest, error) {
	var updated staff.RegistrationRequest
	err := r.requests.update(id, func(stored *staff.RegistrationRequest) error {
		if stored.Status != from {
			return ErrStatusChanged
		}
		req := cloneRegistration(*stored)
		if err := fn(&req); err != nil {
			return err
		}
		req.ID = stored.ID
		*stored = req
		updated = cloneRegistration(req)
		return nil
	})
	return updated, err
}

func cloneRegistration(r staff.RegistrationRequest) staff.RegistrationRequest {
	r.PreferredSubjects = cloneStrings(r.PreferredSubjects)
	r.DecidedBy = cloneStringPtr(r.DecidedBy)
	r.PasswordHash = cloneStringPtr(r.PasswordHash)
	r.StaffID = cloneStringPtr(r.StaffID)
	if r.DecidedAt != nil {
		t := *r.DecidedAt
		r.DecidedAt = &t
	}
	return r
}
