package interview

import "context"

// InterviewRepository - interface for interviews and their candidates
type InterviewRepository interface {
	// Create assigns the next interview number.
	Create(ctx context.Context, interview Interview) (Interview, error)
	GetByID(ctx context.Context, id string) (Interview, error)
	List(ctx context.Context, status *InterviewStatus) ([]Interview, error)
	// Update applies fn atomically and returns the stored result. Nothing is
	// stored when fn fails.
	Update(ctx context.Context, id string, fn func(*Interview) error) (Interview, error)
}
