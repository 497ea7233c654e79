package memory

import (
	"context"
	"fmt"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
)

type mentorRepositoryImpl struct {
	mentors *table[staff.Mentor]
}

// NewMentorRepository returns a mentor roster holding the given mentors.
func NewMentorRepository(seed ...staff.Mentor) staff.MentorRepository {
	r := &mentorRepositoryImpl{mentors: newTable(cloneMentor)}
	for _, m := range seed {
		r.mentors.insert(m.ID, m)
	}
	return r
}

// GetByID implements staff.MentorRepository.
func (r *mentorRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Mentor, error) {
	return r.mentors.get(id)
}

// List implements staff.MentorRepository.
func (r *mentorRepositoryImpl) List(ctx context.Context) ([]staff.Mentor, error) {
	return r.mentors.list(nil), nil
}

// AdjustAssignments implements staff.MentorRepository.
func (r *mentorRepositoryImpl) AdjustAssignments(ctx context.Context, id string, delta int) error {
	return r.mentors.update(id, func(m *staff.Mentor) error {
		if m.CurrentAssignments+delta < 0 {
			return fmt.Errorf("mentor %s assignments cannot go below zero", id)
		}
		m.CurrentAssignments += delta
		return nil
	})
}

func cloneMentor(m staff.Mentor) staff.Mentor {
	m.Specializations = cloneStrings(m.Specializations)
	return m
}
