package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/metrics"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
)

type leaveServiceImpl struct {
	applicationRepo leave.LeaveApplicationRepository
	staffRepo       staff.StaffRepository
	substituteRepo  staff.SubstituteRepository
	ranker          matching.Ranker
	notifier        notification.Notifier
}

func NewLeaveService(
	applicationRepo leave.LeaveApplicationRepository,
	staffRepo staff.StaffRepository,
	substituteRepo staff.SubstituteRepository,
	ranker matching.Ranker,
	notifier notification.Notifier,
) leave.LeaveService {
	return &leaveServiceImpl{
		applicationRepo: applicationRepo,
		staffRepo:       staffRepo,
		substituteRepo:  substituteRepo,
		ranker:          ranker,
		notifier:        notifier,
	}
}

// SuggestSubstitutes implements leave.LeaveService. Only substitutes sharing
// at least one subject with the applicant are listed.
func (s *leaveServiceImpl) SuggestSubstitutes(ctx context.Context, staffID string) (matching.SuggestionResponse, error) {
	member, err := s.getStaff(ctx, staffID)
	if err != nil {
		return matching.SuggestionResponse{}, err
	}

	substitutes, err := s.substituteRepo.List(ctx)
	if err != nil {
		return matching.SuggestionResponse{}, fmt.Errorf("failed to list substitutes: %w", err)
	}

	candidates := make([]matching.Candidate, 0, len(substitutes))
	for _, sub := range substitutes {
		candidates = append(candidates, sub.AsCandidate())
	}

	target := member.AsTarget()
	suggestion := s.ranker.Suggest(target, candidates, true)
	return matching.NewSuggestionResponse(target, suggestion), nil
}

// Apply implements leave.LeaveService.
func (s *leaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplicationResponse{}, err
	}

	member, err := s.getStaff(ctx, req.StaffID)
	if err != nil {
		return leave.LeaveApplicationResponse{}, err
	}

	if req.SubstituteID == member.ID {
		return leave.LeaveApplicationResponse{}, leave.ErrSubstituteIsApplicant
	}
	substitute, err := s.substituteRepo.GetByID(ctx, req.SubstituteID)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return leave.LeaveApplicationResponse{}, staff.ErrSubstituteNotFound
		}
		return leave.LeaveApplicationResponse{}, fmt.Errorf("failed to get substitute: %w", err)
	}

	start, end := req.Period()
	created, err := s.applicationRepo.Create(ctx, leave.LeaveApplication{
		StaffID:      member.ID,
		StartDate:    start,
		EndDate:      end,
		Reason:       strings.TrimSpace(req.Reason),
		SubstituteID: substitute.ID,
		Status:       leave.LeaveApplicationStatusPending,
	})
	if err != nil {
		return leave.LeaveApplicationResponse{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	slog.Info("leave application submitted", "application_id", created.ID, "staff_id", member.ID, "substitute_id", substitute.ID)

	created.StaffName = &member.Name
	created.SubstituteName = &substitute.Name
	return leave.NewLeaveApplicationResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *leaveServiceImpl) ListMine(ctx context.Context, staffID string) ([]leave.LeaveApplicationResponse, error) {
	if _, err := s.getStaff(ctx, staffID); err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.GetByStaffID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return s.toResponses(ctx, applications), nil
}

// List implements leave.LeaveService.
func (s *leaveServiceImpl) List(ctx context.Context, filter leave.LeaveApplicationFilter) ([]leave.LeaveApplicationResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var status *leave.LeaveApplicationStatus
	if filter.Status != nil {
		st := leave.LeaveApplicationStatus(*filter.Status)
		status = &st
	}

	applications, err := s.applicationRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return s.toResponses(ctx, applications), nil
}

// Approve implements leave.LeaveService. The chosen substitute takes on the
// applicant's classes, so its load goes up by one together with the status
// change.
func (s *leaveServiceImpl) Approve(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveApplicationResponse, error) {
	if _, err := s.pendingApplication(ctx, req); err != nil {
		return leave.LeaveApplicationResponse{}, err
	}

	application, err := s.decide(ctx, req, leave.LeaveApplicationStatusApproved, func(a leave.LeaveApplication) error {
		if err := s.substituteRepo.AdjustLoad(ctx, a.SubstituteID, 1); err != nil {
			if errors.Is(err, memory.ErrNoRows) {
				return staff.ErrSubstituteNotFound
			}
			return fmt.Errorf("failed to increase substitute load: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveApplicationResponse{}, err
	}
	metrics.AssignmentsTotal.WithLabelValues("substitute").Inc()

	return s.decided(ctx, application), nil
}

// Reject implements leave.LeaveService.
func (s *leaveServiceImpl) Reject(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveApplicationResponse, error) {
	if _, err := s.pendingApplication(ctx, req); err != nil {
		return leave.LeaveApplicationResponse{}, err
	}

	application, err := s.decide(ctx, req, leave.LeaveApplicationStatusRejected, nil)
	if err != nil {
		return leave.LeaveApplicationResponse{}, err
	}
	return s.decided(ctx, application), nil
}

// errAlreadyReleased aborts a release whose cover was closed concurrently.
var errAlreadyReleased = errors.New("substitute already released")

// ReleaseFinishedSubstitutions implements leave.LeaveService.
func (s *leaveServiceImpl) ReleaseFinishedSubstitutions(ctx context.Context, now time.Time) (int, error) {
	status := leave.LeaveApplicationStatusApproved
	applications, err := s.applicationRepo.List(ctx, &status)
	if err != nil {
		return 0, fmt.Errorf("failed to list approved leave applications: %w", err)
	}

	released := 0
	for _, application := range applications {
		if application.SubstituteReleasedAt != nil || !application.HasEnded(now) {
			continue
		}

		releasedAt := now
		_, err := s.applicationRepo.UpdateIfStatus(ctx, application.ID, leave.LeaveApplicationStatusApproved, func(a *leave.LeaveApplication) error {
			if a.SubstituteReleasedAt != nil {
				return errAlreadyReleased
			}
			a.SubstituteReleasedAt = &releasedAt
			return nil
		})
		if errors.Is(err, errAlreadyReleased) || errors.Is(err, memory.ErrStatusChanged) {
			continue
		}
		if err != nil {
			return released, fmt.Errorf("failed to update leave application: %w", err)
		}

		// A missing substitute or an already empty load still closes the cover.
		if err := s.substituteRepo.AdjustLoad(ctx, application.SubstituteID, -1); err != nil {
			slog.Warn("failed to decrease substitute load", "application_id", application.ID, "substitute_id", application.SubstituteID, "error", err)
		}

		slog.Info("substitute released", "application_id", application.ID, "substitute_id", application.SubstituteID)
		released++
	}
	return released, nil
}

func (s *leaveServiceImpl) pendingApplication(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveApplication, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}

	application, err := s.applicationRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return leave.LeaveApplication{}, leave.ErrLeaveApplicationNotFound
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to get leave application: %w", err)
	}

	if application.Status != leave.LeaveApplicationStatusPending {
		return leave.LeaveApplication{}, leave.ErrLeaveApplicationAlreadyProcessed
	}
	return application, nil
}

// decide moves a pending application to status. Only one of several
// concurrent decisions on the same application succeeds; sideEffect runs
// inside that transition and aborts it on error.
func (s *leaveServiceImpl) decide(ctx context.Context, req leave.DecideLeaveRequest, status leave.LeaveApplicationStatus, sideEffect func(leave.LeaveApplication) error) (leave.LeaveApplication, error) {
	now := time.Now()
	decidedBy := req.DecidedBy

	application, err := s.applicationRepo.UpdateIfStatus(ctx, req.ApplicationID, leave.LeaveApplicationStatusPending, func(a *leave.LeaveApplication) error {
		if sideEffect != nil {
			if err := sideEffect(*a); err != nil {
				return err
			}
		}
		a.Status = status
		a.DecidedBy = &decidedBy
		a.DecidedAt = &now
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, memory.ErrStatusChanged):
			return leave.LeaveApplication{}, leave.ErrLeaveApplicationAlreadyProcessed
		case errors.Is(err, memory.ErrNoRows):
			return leave.LeaveApplication{}, leave.ErrLeaveApplicationNotFound
		case errors.Is(err, staff.ErrSubstituteNotFound):
			return leave.LeaveApplication{}, err
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to update leave application: %w", err)
	}

	slog.Info("leave application decided", "application_id", application.ID, "status", status, "decided_by", decidedBy)
	return application, nil
}

func (s *leaveServiceImpl) decided(ctx context.Context, application leave.LeaveApplication) leave.LeaveApplicationResponse {
	application = s.withNames(ctx, application)
	s.notifyDecision(ctx, application)
	return leave.NewLeaveApplicationResponse(application)
}

func (s *leaveServiceImpl) notifyDecision(ctx context.Context, application leave.LeaveApplication) {
	req := notification.CreateNotificationRequest{
		RecipientID: application.StaffID,
		Data: map[string]any{
			"application_id": application.ID,
			"substitute_id":  application.SubstituteID,
		},
	}
	period := fmt.Sprintf("%s to %s", application.StartDate.Format(time.DateOnly), application.EndDate.Format(time.DateOnly))
	switch application.Status {
	case leave.LeaveApplicationStatusApproved:
		req.Type = notification.TypeLeaveApproved
		req.Title = "Leave approved"
		req.Message = fmt.Sprintf("Your leave from %s has been approved", period)
	default:
		req.Type = notification.TypeLeaveRejected
		req.Title = "Leave rejected"
		req.Message = fmt.Sprintf("Your leave from %s has been rejected", period)
	}

	if err := s.notifier.Notify(ctx, req); err != nil {
		slog.Warn("failed to send notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
	}
}

func (s *leaveServiceImpl) getStaff(ctx context.Context, id string) (staff.StaffMember, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	return member, nil
}

func (s *leaveServiceImpl) toResponses(ctx context.Context, applications []leave.LeaveApplication) []leave.LeaveApplicationResponse {
	responses := make([]leave.LeaveApplicationResponse, 0, len(applications))
	for _, a := range applications {
		responses = append(responses, leave.NewLeaveApplicationResponse(s.withNames(ctx, a)))
	}
	return responses
}

// withNames fills the applicant and substitute names; missing entries are left nil.
func (s *leaveServiceImpl) withNames(ctx context.Context, a leave.LeaveApplication) leave.LeaveApplication {
	if member, err := s.staffRepo.GetByID(ctx, a.StaffID); err == nil {
		a.StaffName = &member.Name
	}
	if sub, err := s.substituteRepo.GetByID(ctx, a.SubstituteID); err == nil {
		a.SubstituteName = &sub.Name
	}
	return a
}
