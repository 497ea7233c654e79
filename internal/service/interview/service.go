package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/interview"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
)

type interviewServiceImpl struct {
	interviewRepo interview.InterviewRepository
	notifier      notification.Notifier
	now           func() time.Time
}

func NewInterviewService(interviewRepo interview.InterviewRepository, notifier notification.Notifier) interview.InterviewService {
	return &interviewServiceImpl{
		interviewRepo: interviewRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

// Schedule implements interview.InterviewService. Candidates are numbered
// C001, C002 and so on within the interview.
func (s *interviewServiceImpl) Schedule(ctx context.Context, req interview.ScheduleInterviewRequest) (interview.InterviewResponse, error) {
	if err := req.Validate(); err != nil {
		return interview.InterviewResponse{}, err
	}
	now := s.now()
	if !req.Time().After(now) {
		return interview.InterviewResponse{}, validator.ValidationErrors{{
			Field:   "scheduled_at",
			Message: "scheduled_at must be in the future",
		}}
	}

	candidates := make([]interview.Candidate, 0, len(req.Candidates))
	for n, c := range req.Candidates {
		candidates = append(candidates, interview.Candidate{
			ID:    fmt.Sprintf("C%03d", n+1),
			Name:  strings.TrimSpace(c.Name),
			Email: strings.ToLower(strings.TrimSpace(c.Email)),
			Phone: c.Phone,
		})
	}

	created, err := s.interviewRepo.Create(ctx, interview.Interview{
		Title:         strings.TrimSpace(req.Title),
		Subject:       req.Subject,
		ScheduledAt:   req.Time(),
		Venue:         req.Venue,
		Status:        interview.InterviewStatusUpcoming,
		MarkingScheme: interview.DefaultMarkingScheme(),
		Candidates:    candidates,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return interview.InterviewResponse{}, fmt.Errorf("failed to schedule interview: %w", err)
	}

	slog.Info("interview scheduled", "interview_id", created.ID, "number", created.Number, "candidates", len(candidates))
	return interview.NewInterviewResponse(created, now), nil
}

// List implements interview.InterviewService. The status filter applies to
// the status as of now, so interviews the cleanup job has not reached yet
// still list as ended.
func (s *interviewServiceImpl) List(ctx context.Context, filter interview.InterviewFilter) ([]interview.InterviewResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	interviews, err := s.interviewRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}

	now := s.now()
	responses := make([]interview.InterviewResponse, 0, len(interviews))
	for _, i := range interviews {
		if filter.Status != nil && string(i.StatusAt(now)) != *filter.Status {
			continue
		}
		responses = append(responses, interview.NewInterviewResponse(i, now))
	}
	return responses, nil
}

// Get implements interview.InterviewService.
func (s *interviewServiceImpl) Get(ctx context.Context, id string) (interview.InterviewResponse, error) {
	i, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return interview.InterviewResponse{}, interview.ErrInterviewNotFound
		}
		return interview.InterviewResponse{}, fmt.Errorf("failed to get interview: %w", err)
	}
	return interview.NewInterviewResponse(i, s.now()), nil
}

// SetMarkingScheme implements interview.InterviewService.
func (s *interviewServiceImpl) SetMarkingScheme(ctx context.Context, req interview.SetMarkingSchemeRequest) (interview.InterviewResponse, error) {
	if err := req.Validate(); err != nil {
		return interview.InterviewResponse{}, err
	}

	return s.update(ctx, req.InterviewID, func(i *interview.Interview) error {
		if i.HasMarks() {
			return interview.ErrMarkingSchemeLocked
		}
		i.MarkingScheme = req.Scheme()
		return nil
	})
}

// AssignMarks implements interview.InterviewService. Marks can be revised
// until a shortlist is awaiting or has received approval.
func (s *interviewServiceImpl) AssignMarks(ctx context.Context, req interview.AssignMarksRequest) (interview.InterviewResponse, error) {
	if err := req.Validate(); err != nil {
		return interview.InterviewResponse{}, err
	}

	var comments *string
	if req.Comments != nil {
		if trimmed := strings.TrimSpace(*req.Comments); trimmed != "" {
			comments = &trimmed
		}
	}
	now := s.now()

	resp, err := s.update(ctx, req.InterviewID, func(i *interview.Interview) error {
		if i.ShortlistLocked() {
			return interview.ErrShortlistSubmitted
		}
		idx := i.FindCandidate(req.CandidateID)
		if idx < 0 {
			return interview.ErrCandidateNotFound
		}
		if err := req.CheckAgainst(i.MarkingScheme); err != nil {
			return err
		}

		total := 0
		for _, score := range req.Scores {
			total += score
		}
		i.Candidates[idx].Marks = &interview.Marks{
			Scores:   req.Scores,
			Total:    total,
			Comments: comments,
			MarkedBy: req.MarkedBy,
			MarkedAt: now,
		}
		return nil
	})
	if err != nil {
		return interview.InterviewResponse{}, err
	}

	slog.Info("interview marks assigned", "interview_id", req.InterviewID, "candidate_id", req.CandidateID, "marked_by", req.MarkedBy)
	return resp, nil
}

// SubmitShortlist implements interview.InterviewService. A rejected
// shortlist may be replaced by a new one.
func (s *interviewServiceImpl) SubmitShortlist(ctx context.Context, req interview.SubmitShortlistRequest) (interview.InterviewResponse, error) {
	if err := req.Validate(); err != nil {
		return interview.InterviewResponse{}, err
	}
	now := s.now()

	resp, err := s.update(ctx, req.InterviewID, func(i *interview.Interview) error {
		if i.StatusAt(now) != interview.InterviewStatusEnded {
			return interview.ErrInterviewNotEnded
		}
		if i.ShortlistLocked() {
			return interview.ErrShortlistSubmitted
		}

		seen := make(map[string]bool, len(req.CandidateIDs))
		ids := make([]string, 0, len(req.CandidateIDs))
		for _, id := range req.CandidateIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			idx := i.FindCandidate(id)
			if idx < 0 {
				return interview.ErrCandidateNotFound
			}
			if i.Candidates[idx].Marks == nil {
				return interview.ErrCandidateNotMarked
			}
			ids = append(ids, id)
		}

		i.Status = interview.InterviewStatusEnded
		i.Shortlist = &interview.Shortlist{
			CandidateIDs: ids,
			Status:       interview.ShortlistStatusPending,
			SubmittedBy:  req.SubmittedBy,
			SubmittedAt:  now,
		}
		return nil
	})
	if err != nil {
		return interview.InterviewResponse{}, err
	}

	slog.Info("interview shortlist submitted", "interview_id", req.InterviewID, "candidates", len(resp.Shortlist.CandidateIDs), "submitted_by", req.SubmittedBy)
	return resp, nil
}

// ApproveShortlist implements interview.InterviewService.
func (s *interviewServiceImpl) ApproveShortlist(ctx context.Context, req interview.DecideShortlistRequest) (interview.InterviewResponse, error) {
	return s.decide(ctx, req, interview.ShortlistStatusApproved)
}

// RejectShortlist implements interview.InterviewService.
func (s *interviewServiceImpl) RejectShortlist(ctx context.Context, req interview.DecideShortlistRequest) (interview.InterviewResponse, error) {
	return s.decide(ctx, req, interview.ShortlistStatusRejected)
}

func (s *interviewServiceImpl) decide(ctx context.Context, req interview.DecideShortlistRequest, status interview.ShortlistStatus) (interview.InterviewResponse, error) {
	if err := req.Validate(); err != nil {
		return interview.InterviewResponse{}, err
	}

	var remarks *string
	if req.Remarks != nil {
		if trimmed := strings.TrimSpace(*req.Remarks); trimmed != "" {
			remarks = &trimmed
		}
	}
	now := s.now()
	decidedBy := req.DecidedBy

	var decided interview.Interview
	resp, err := s.update(ctx, req.InterviewID, func(i *interview.Interview) error {
		if i.Shortlist == nil || i.Shortlist.Status != interview.ShortlistStatusPending {
			return interview.ErrShortlistNotPending
		}
		i.Shortlist.Status = status
		i.Shortlist.DecidedBy = &decidedBy
		i.Shortlist.DecidedAt = &now
		i.Shortlist.Remarks = remarks
		decided = *i
		return nil
	})
	if err != nil {
		return interview.InterviewResponse{}, err
	}

	slog.Info("interview shortlist decided", "interview_id", req.InterviewID, "status", status, "decided_by", decidedBy)
	s.notifyDecision(ctx, decided)
	return resp, nil
}

// EndPastInterviews implements interview.InterviewService.
func (s *interviewServiceImpl) EndPastInterviews(ctx context.Context, now time.Time) (int, error) {
	upcoming := interview.InterviewStatusUpcoming
	interviews, err := s.interviewRepo.List(ctx, &upcoming)
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming interviews: %w", err)
	}

	ended := 0
	for _, i := range interviews {
		if i.StatusAt(now) != interview.InterviewStatusEnded {
			continue
		}
		_, err := s.interviewRepo.Update(ctx, i.ID, func(stored *interview.Interview) error {
			stored.Status = stored.StatusAt(now)
			return nil
		})
		if err != nil {
			slog.Warn("failed to end interview", "interview_id", i.ID, "error", err)
			continue
		}
		ended++
	}
	return ended, nil
}

// update runs fn against the stored interview and maps repository errors.
func (s *interviewServiceImpl) update(ctx context.Context, id string, fn func(*interview.Interview) error) (interview.InterviewResponse, error) {
	updated, err := s.interviewRepo.Update(ctx, id, fn)
	if err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.Is(err, memory.ErrNoRows):
			return interview.InterviewResponse{}, interview.ErrInterviewNotFound
		case errors.As(err, &validationErrs),
			errors.Is(err, interview.ErrCandidateNotFound),
			errors.Is(err, interview.ErrInterviewNotEnded),
			errors.Is(err, interview.ErrMarkingSchemeLocked),
			errors.Is(err, interview.ErrShortlistSubmitted),
			errors.Is(err, interview.ErrShortlistNotPending),
			errors.Is(err, interview.ErrCandidateNotMarked):
			return interview.InterviewResponse{}, err
		}
		return interview.InterviewResponse{}, fmt.Errorf("failed to update interview: %w", err)
	}
	return interview.NewInterviewResponse(updated, s.now()), nil
}

func (s *interviewServiceImpl) notifyDecision(ctx context.Context, i interview.Interview) {
	label := fmt.Sprintf("Interview #%d", i.Number)
	req := notification.CreateNotificationRequest{
		RecipientID: i.Shortlist.SubmittedBy,
		Data: map[string]any{
			"interview_id":  i.ID,
			"candidate_ids": i.Shortlist.CandidateIDs,
		},
	}
	switch i.Shortlist.Status {
	case interview.ShortlistStatusApproved:
		req.Type = notification.TypeShortlistApproved
		req.Title = "Shortlist approved"
		req.Message = fmt.Sprintf("The shortlist for %s has been approved", label)
	default:
		req.Type = notification.TypeShortlistRejected
		req.Title = "Shortlist rejected"
		req.Message = fmt.Sprintf("The shortlist for %s has been rejected", label)
	}

	if err := s.notifier.Notify(ctx, req); err != nil {
		slog.Warn("failed to send notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
	}
}
