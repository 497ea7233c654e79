package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/metrics"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
	"golang.org/x/crypto/bcrypt"
)

type staffServiceImpl struct {
	staffRepo        staff.StaffRepository
	mentorRepo       staff.MentorRepository
	registrationRepo staff.RegistrationRepository
	userRepo         user.UserRepository
	jobDescRepo      staff.JobDescriptionRepository
	ranker           matching.Ranker
	notifier         notification.Notifier

	// assignMu applies mentor count changes in the order of the swaps that
	// cause them, so a release never lands before its matching increment.
	assignMu sync.Mutex
}

func NewStaffService(
	staffRepo staff.StaffRepository,
	mentorRepo staff.MentorRepository,
	registrationRepo staff.RegistrationRepository,
	userRepo user.UserRepository,
	jobDescRepo staff.JobDescriptionRepository,
	ranker matching.Ranker,
	notifier notification.Notifier,
) staff.StaffService {
	return &staffServiceImpl{
		staffRepo:        staffRepo,
		mentorRepo:       mentorRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		jobDescRepo:      jobDescRepo,
		ranker:           ranker,
		notifier:         notifier,
	}
}

// ==================== STAFF OPERATIONS ====================

// ListStaff implements staff.StaffService.
func (s *staffServiceImpl) ListStaff(ctx context.Context) ([]staff.StaffResponse, error) {
	members, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	responses := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, staff.NewStaffResponse(s.withMentorName(ctx, m)))
	}
	return responses, nil
}

// GetStaff implements staff.StaffService.
func (s *staffServiceImpl) GetStaff(ctx context.Context, id string) (staff.StaffResponse, error) {
	member, err := s.getStaff(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.NewStaffResponse(s.withMentorName(ctx, member)), nil
}

func (s *staffServiceImpl) getStaff(ctx context.Context, id string) (staff.StaffMember, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	return member, nil
}

// withMentorName fills MentorName when the member has a mentor on the roster.
func (s *staffServiceImpl) withMentorName(ctx context.Context, m staff.StaffMember) staff.StaffMember {
	if m.MentorID == nil {
		return m
	}
	mentor, err := s.mentorRepo.GetByID(ctx, *m.MentorID)
	if err != nil {
		slog.Warn("mentor lookup failed", "staff_id", m.ID, "mentor_id", *m.MentorID, "error", err)
		return m
	}
	m.MentorName = &mentor.Name
	return m
}

// ==================== MENTOR OPERATIONS ====================

// ListMentors implements staff.StaffService.
func (s *staffServiceImpl) ListMentors(ctx context.Context) ([]staff.MentorResponse, error) {
	mentors, err := s.mentorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}

	responses := make([]staff.MentorResponse, 0, len(mentors))
	for _, m := range mentors {
		responses = append(responses, staff.NewMentorResponse(m))
	}
	return responses, nil
}

// SuggestMentors implements staff.StaffService.
func (s *staffServiceImpl) SuggestMentors(ctx context.Context, staffID string) (matching.SuggestionResponse, error) {
	member, err := s.getStaff(ctx, staffID)
	if err != nil {
		return matching.SuggestionResponse{}, err
	}

	mentors, err := s.mentorRepo.List(ctx)
	if err != nil {
		return matching.SuggestionResponse{}, fmt.Errorf("failed to list mentors: %w", err)
	}

	candidates := make([]matching.Candidate, 0, len(mentors))
	for _, m := range mentors {
		candidates = append(candidates, m.AsCandidate())
	}

	target := member.AsTarget()
	suggestion := s.ranker.Suggest(target, candidates, false)
	return matching.NewSuggestionResponse(target, suggestion), nil
}

// AssignMentor implements staff.StaffService.
func (s *staffServiceImpl) AssignMentor(ctx context.Context, req staff.AssignMentorRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	member, err := s.getStaff(ctx, req.StaffID)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	mentor, err := s.mentorRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return staff.StaffResponse{}, staff.ErrMentorNotFound
		}
		return staff.StaffResponse{}, fmt.Errorf("failed to get mentor: %w", err)
	}

	changed, err := s.swapMentor(ctx, member.ID, mentor.ID)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	member.MentorID = &mentor.ID
	member.MentorName = &mentor.Name
	if !changed {
		return staff.NewStaffResponse(member), nil
	}

	metrics.AssignmentsTotal.WithLabelValues("mentor").Inc()
	slog.Info("mentor assigned", "staff_id", member.ID, "mentor_id", mentor.ID)

	s.notifyMentorAssigned(ctx, member, mentor)
	return staff.NewStaffResponse(member), nil
}

// swapMentor records the new mentor and moves one assignment from the
// previous mentor to it. It reports false when the mentor was already set.
func (s *staffServiceImpl) swapMentor(ctx context.Context, staffID, mentorID string) (bool, error) {
	s.assignMu.Lock()
	defer s.assignMu.Unlock()

	previous, err := s.staffRepo.SwapMentor(ctx, staffID, mentorID)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return false, staff.ErrStaffNotFound
		}
		return false, fmt.Errorf("failed to update staff mentor: %w", err)
	}
	if previous != nil && *previous == mentorID {
		return false, nil
	}

	if err := s.mentorRepo.AdjustAssignments(ctx, mentorID, 1); err != nil {
		slog.Warn("failed to increment mentor assignments", "staff_id", staffID, "mentor_id", mentorID, "error", err)
	}
	if previous != nil {
		if err := s.mentorRepo.AdjustAssignments(ctx, *previous, -1); err != nil {
			slog.Warn("failed to release previous mentor", "staff_id", staffID, "mentor_id", *previous, "error", err)
		}
	}
	return true, nil
}

// notifyMentorAssigned tells the staff member and the mentor about a new
// pairing. Failures are logged; the assignment already stands.
func (s *staffServiceImpl) notifyMentorAssigned(ctx context.Context, member staff.StaffMember, mentor staff.Mentor) {
	data := map[string]any{"staff_id": member.ID, "mentor_id": mentor.ID}
	requests := []notification.CreateNotificationRequest{
		{
			RecipientID: member.ID,
			Type:        notification.TypeMentorAssigned,
			Title:       "Mentor assigned",
			Message:     fmt.Sprintf("%s is now your mentor", mentor.Name),
			Data:        data,
		},
		{
			RecipientID: mentor.ID,
			Type:        notification.TypeMenteeAssigned,
			Title:       "New mentee",
			Message:     fmt.Sprintf("You have been assigned to mentor %s", member.Name),
			Data:        data,
		},
	}
	for _, req := range requests {
		if err := s.notifier.Notify(ctx, req); err != nil {
			slog.Warn("failed to send notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
		}
	}
}

// ==================== JOB DESCRIPTION OPERATIONS ====================

// SaveJobDescription implements staff.StaffService. Blank tasks are dropped
// and a previous description is replaced.
func (s *staffServiceImpl) SaveJobDescription(ctx context.Context, req staff.SaveJobDescriptionRequest) (staff.JobDescriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.JobDescriptionResponse{}, err
	}

	member, err := s.getStaff(ctx, req.StaffID)
	if err != nil {
		return staff.JobDescriptionResponse{}, err
	}

	saved, err := s.jobDescRepo.Save(ctx, staff.JobDescription{
		StaffID:   member.ID,
		Tasks:     req.FilledTasks(),
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		return staff.JobDescriptionResponse{}, fmt.Errorf("failed to save job description: %w", err)
	}

	if !member.HasJobDescription {
		if err := s.staffRepo.SetHasJobDescription(ctx, member.ID, true); err != nil {
			return staff.JobDescriptionResponse{}, fmt.Errorf("failed to flag job description: %w", err)
		}
	}

	slog.Info("job description saved", "staff_id", member.ID, "tasks", len(saved.Tasks), "created_by", req.CreatedBy)

	if err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientID: member.ID,
		Type:        notification.TypeJobDescriptionSet,
		Title:       "Job description updated",
		Message:     fmt.Sprintf("Your job description now lists %d tasks", len(saved.Tasks)),
		Data:        map[string]any{"staff_id": member.ID},
	}); err != nil {
		slog.Warn("failed to send notification", "recipient_id", member.ID, "type", notification.TypeJobDescriptionSet, "error", err)
	}

	return staff.NewJobDescriptionResponse(saved, member.Name), nil
}

// GetJobDescription implements staff.StaffService.
func (s *staffServiceImpl) GetJobDescription(ctx context.Context, staffID string) (staff.JobDescriptionResponse, error) {
	member, err := s.getStaff(ctx, staffID)
	if err != nil {
		return staff.JobDescriptionResponse{}, err
	}

	jd, err := s.jobDescRepo.GetByStaffID(ctx, member.ID)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return staff.JobDescriptionResponse{}, staff.ErrJobDescriptionNotFound
		}
		return staff.JobDescriptionResponse{}, fmt.Errorf("failed to get job description: %w", err)
	}
	return staff.NewJobDescriptionResponse(jd, member.Name), nil
}

// ==================== REGISTRATION OPERATIONS ====================

// SubmitRegistration implements staff.StaffService.
func (s *staffServiceImpl) SubmitRegistration(ctx context.Context, req staff.SubmitRegistrationRequest) (staff.RegistrationResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.RegistrationResponse{}, err
	}

	email := strings.TrimSpace(req.Email)
	if _, err := s.staffRepo.GetByEmail(ctx, email); err == nil {
		return staff.RegistrationResponse{}, staff.ErrStaffEmailExists
	} else if !errors.Is(err, memory.ErrNoRows) {
		return staff.RegistrationResponse{}, fmt.Errorf("failed to check staff email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return staff.RegistrationResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashed)

	subjects := make([]string, 0, len(req.PreferredSubjects))
	for _, subject := range req.PreferredSubjects {
		subjects = append(subjects, strings.TrimSpace(subject))
	}

	created, err := s.registrationRepo.Create(ctx, staff.RegistrationRequest{
		Name:              strings.TrimSpace(req.Name),
		Email:             email,
		Phone:             strings.TrimSpace(req.Phone),
		PreferredSubjects: subjects,
		PasswordHash:      &hash,
		Status:            staff.RegistrationStatusPending,
	})
	if err != nil {
		return staff.RegistrationResponse{}, fmt.Errorf("failed to create registration request: %w", err)
	}

	return staff.NewRegistrationResponse(created), nil
}

// ListRegistrations implements staff.StaffService.
func (s *staffServiceImpl) ListRegistrations(ctx context.Context, filter staff.RegistrationFilter) ([]staff.RegistrationResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var status *staff.RegistrationStatus
	if filter.Status != nil {
		st := staff.RegistrationStatus(*filter.Status)
		status = &st
	}

	requests, err := s.registrationRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list registration requests: %w", err)
	}

	responses := make([]staff.RegistrationResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, staff.NewRegistrationResponse(r))
	}
	return responses, nil
}

// ApproveRegistration implements staff.StaffService.
func (s *staffServiceImpl) ApproveRegistration(ctx context.Context, req staff.DecideRegistrationRequest) (staff.RegistrationResponse, error) {
	request, err := s.pendingRegistration(ctx, req)
	if err != nil {
		return staff.RegistrationResponse{}, err
	}

	if request.PasswordHash != nil {
		if _, err := s.userRepo.GetByEmail(ctx, request.Email); err == nil {
			return staff.RegistrationResponse{}, user.ErrUserEmailExists
		} else if !errors.Is(err, memory.ErrNoRows) {
			return staff.RegistrationResponse{}, fmt.Errorf("failed to check account email: %w", err)
		}
	}

	// The roster entry is created inside the transition so a concurrent
	// rejection cannot leave an onboarded staff member behind.
	return s.decide(ctx, req, staff.RegistrationStatusApproved, func(request *staff.RegistrationRequest) error {
		phone := request.Phone
		member, err := s.staffRepo.Create(ctx, staff.StaffMember{
			Name:              request.Name,
			Email:             request.Email,
			Phone:             &phone,
			PreferredSubjects: request.PreferredSubjects,
		})
		if err != nil {
			if errors.Is(err, staff.ErrStaffEmailExists) {
				return err
			}
			return fmt.Errorf("failed to create staff member: %w", err)
		}

		if request.PasswordHash != nil {
			_, err := s.userRepo.Create(ctx, user.User{
				Email:        member.Email,
				Name:         member.Name,
				PasswordHash: request.PasswordHash,
				Role:         user.RoleStaff,
				StaffID:      &member.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to create staff account: %w", err)
			}
		}

		request.StaffID = &member.ID
		return nil
	})
}

// RejectRegistration implements staff.StaffService.
func (s *staffServiceImpl) RejectRegistration(ctx context.Context, req staff.DecideRegistrationRequest) (staff.RegistrationResponse, error) {
	if _, err := s.pendingRegistration(ctx, req); err != nil {
		return staff.RegistrationResponse{}, err
	}
	return s.decide(ctx, req, staff.RegistrationStatusRejected, nil)
}

func (s *staffServiceImpl) pendingRegistration(ctx context.Context, req staff.DecideRegistrationRequest) (staff.RegistrationRequest, error) {
	if err := req.Validate(); err != nil {
		return staff.RegistrationRequest{}, err
	}

	request, err := s.registrationRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return staff.RegistrationRequest{}, staff.ErrRegistrationNotFound
		}
		return staff.RegistrationRequest{}, fmt.Errorf("failed to get registration request: %w", err)
	}

	if request.Status != staff.RegistrationStatusPending {
		return staff.RegistrationRequest{}, staff.ErrRegistrationAlreadyProcessed
	}
	return request, nil
}

func (s *staffServiceImpl) decide(ctx context.Context, req staff.DecideRegistrationRequest, status staff.RegistrationStatus, onboard func(*staff.RegistrationRequest) error) (staff.RegistrationResponse, error) {
	now := time.Now()
	decidedBy := req.DecidedBy

	request, err := s.registrationRepo.UpdateIfStatus(ctx, req.RequestID, staff.RegistrationStatusPending, func(r *staff.RegistrationRequest) error {
		if onboard != nil {
			if err := onboard(r); err != nil {
				return err
			}
		}
		r.Status = status
		r.DecidedBy = &decidedBy
		r.DecidedAt = &now
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, memory.ErrStatusChanged):
			return staff.RegistrationResponse{}, staff.ErrRegistrationAlreadyProcessed
		case errors.Is(err, memory.ErrNoRows):
			return staff.RegistrationResponse{}, staff.ErrRegistrationNotFound
		case errors.Is(err, staff.ErrStaffEmailExists):
			return staff.RegistrationResponse{}, err
		}
		return staff.RegistrationResponse{}, fmt.Errorf("failed to update registration request: %w", err)
	}

	slog.Info("registration decided", "request_id", request.ID, "status", status, "decided_by", decidedBy)
	return staff.NewRegistrationResponse(request), nil
}
