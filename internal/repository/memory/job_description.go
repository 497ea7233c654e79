package memory

import (
	"context"
	"slices"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
)

type jobDescriptionRepositoryImpl struct {
	descriptions *table[staff.JobDescription]
}

func NewJobDescriptionRepository() staff.JobDescriptionRepository {
	return &jobDescriptionRepositoryImpl{descriptions: newTable(cloneJobDescription)}
}

// Save implements staff.JobDescriptionRepository. An existing description
// for the staff member keeps its CreatedAt.
func (r *jobDescriptionRepositoryImpl) Save(ctx context.Context, jd staff.JobDescription) (staff.JobDescription, error) {
	now := time.Now()
	if existing, err := r.descriptions.get(jd.StaffID); err == nil {
		jd.CreatedAt = existing.CreatedAt
	} else if jd.CreatedAt.IsZero() {
		jd.CreatedAt = now
	}
	jd.UpdatedAt = now
	r.descriptions.insert(jd.StaffID, jd)
	return cloneJobDescription(jd), nil
}

// GetByStaffID implements staff.JobDescriptionRepository.
func (r *jobDescriptionRepositoryImpl) GetByStaffID(ctx context.Context, staffID string) (staff.JobDescription, error) {
	return r.descriptions.get(staffID)
}

func cloneJobDescription(jd staff.JobDescription) staff.JobDescription {
	jd.Tasks = slices.Clone(jd.Tasks)
	return jd
}
