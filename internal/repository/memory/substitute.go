package memory

import (
	"context"
	"fmt"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
)

type substituteRepositoryImpl struct {
	substitutes *table[staff.SubstituteStaff]
}

// NewSubstituteRepository returns a substitute roster holding the given staff.
func NewSubstituteRepository(seed ...staff.SubstituteStaff) staff.SubstituteRepository {
	r := &substituteRepositoryImpl{substitutes: newTable(cloneSubstitute)}
	for _, s := range seed {
		r.substitutes.insert(s.ID, s)
	}
	return r
}

// GetByID implements staff.SubstituteRepository.
func (r *substituteRepositoryImpl) GetByID(ctx context.Context, id string) (staff.SubstituteStaff, error) {
	return r.substitutes.get(id)
}

// List implements staff.SubstituteRepository.
func (r *substituteRepositoryImpl) List(ctx context.Context) ([]staff.SubstituteStaff, error) {
	return r.substitutes.list(nil), nil
}

// AdjustLoad implements staff.SubstituteRepository.
func (r *substituteRepositoryImpl) AdjustLoad(ctx context.Context, id string, delta int) error {
	return r.substitutes.update(id, func(s *staff.SubstituteStaff) error {
		if s.CurrentLoad+delta < 0 {
			return fmt.Errorf("substitute %s load cannot go below zero", id)
		}
		s.CurrentLoad += delta
		return nil
	})
}

func cloneSubstitute(s staff.SubstituteStaff) staff.SubstituteStaff {
	s.AvailableSubjects = cloneStrings(s.AvailableSubjects)
	return s
}
