package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/interview"
)

type interviewRepositoryImpl struct {
	createMu   sync.Mutex
	interviews *table[interview.Interview]
}

func NewInterviewRepository() interview.InterviewRepository {
	return &interviewRepositoryImpl{interviews: newTable(cloneInterview)}
}

// Create implements interview.InterviewRepository.
func (r *interviewRepositoryImpl) Create(ctx context.Context, i interview.Interview) (interview.Interview, error) {
	if i.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return interview.Interview{}, err
		}
		i.ID = id.String()
	}
	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now

	r.createMu.Lock()
	defer r.createMu.Unlock()
	i.Number = len(r.interviews.list(nil)) + 1
	r.interviews.insert(i.ID, i)
	return cloneInterview(i), nil
}

// GetByID implements interview.InterviewRepository.
func (r *interviewRepositoryImpl) GetByID(ctx context.Context, id string) (interview.Interview, error) {
	return r.interviews.get(id)
}

// List implements interview.InterviewRepository. Interviews come back in
// the order they were scheduled.
func (r *interviewRepositoryImpl) List(ctx context.Context, status *interview.InterviewStatus) ([]interview.Interview, error) {
	if status == nil {
		return r.interviews.list(nil), nil
	}
	return r.interviews.list(func(i interview.Interview) bool {
		return i.Status == *status
	}), nil
}

// Update implements interview.InterviewRepository.
func (r *interviewRepositoryImpl) Update(ctx context.Context, id string, fn func(*interview.Interview) error) (interview.Interview, error) {
	var updated interview.Interview
	err := r.interviews.update(id, func(stored *interview.Interview) error {
		i := cloneInterview(*stored)
		if err := fn(&i); err != nil {
			return err
		}
		i.ID = stored.ID
		i.Number = stored.Number
		i.CreatedAt = stored.CreatedAt
		i.UpdatedAt = time.Now()
		*stored = i
		updated = cloneInterview(i)
		return nil
	})
	return updated, err
}

func cloneInterview(i interview.Interview) interview.Interview {
	i.Subject = cloneStringPtr(i.Subject)
	i.Venue = cloneStringPtr(i.Venue)
	i.MarkingScheme = slices.Clone(i.MarkingScheme)

	if i.Candidates != nil {
		candidates := make([]interview.Candidate, len(i.Candidates))
		for n, c := range i.Candidates {
			c.Phone = cloneStringPtr(c.Phone)
			if c.Marks != nil {
				marks := *c.Marks
				marks.Scores = slices.Clone(marks.Scores)
				marks.Comments = cloneStringPtr(marks.Comments)
				c.Marks = &marks
			}
			candidates[n] = c
		}
		i.Candidates = candidates
	}

	if i.Shortlist != nil {
		shortlist := *i.Shortlist
		shortlist.CandidateIDs = cloneStrings(shortlist.CandidateIDs)
		shortlist.DecidedBy = cloneStringPtr(shortlist.DecidedBy)
		shortlist.DecidedAt = cloneTimePtr(shortlist.DecidedAt)
		shortlist.Remarks = cloneStringPtr(shortlist.Remarks)
		i.Shortlist = &shortlist
	}
	return i
}
