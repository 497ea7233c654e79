package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/dashboard"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	staffRepo        staff.StaffRepository
	mentorRepo       staff.MentorRepository
	substituteRepo   staff.SubstituteRepository
	registrationRepo staff.RegistrationRepository
	applicationRepo  leave.LeaveApplicationRepository
}

func NewDashboardService(
	staffRepo staff.StaffRepository,
	mentorRepo staff.MentorRepository,
	substituteRepo staff.SubstituteRepository,
	registrationRepo staff.RegistrationRepository,
	applicationRepo leave.LeaveApplicationRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		staffRepo:        staffRepo,
		mentorRepo:       mentorRepo,
		substituteRepo:   substituteRepo,
		registrationRepo: registrationRepo,
		applicationRepo:  applicationRepo,
	}
}

// GetDashboard returns combined dashboard data, one goroutine per section
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, now time.Time) (*dashboard.DashboardResponse, error) {
	var result dashboard.DashboardResponse

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Staff and mentor coverage
	g.Go(func() error {
		members, err := s.staffRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list staff: %w", err)
		}
		result.Staff = summarizeStaff(members)
		return nil
	})

	// 2. Registration backlog
	g.Go(func() error {
		requests, err := s.registrationRepo.List(gCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to list registrations: %w", err)
		}
		for _, req := range requests {
			switch req.Status {
			case staff.RegistrationStatusPending:
				result.Registrations.Pending++
			case staff.RegistrationStatusApproved:
				result.Registrations.Approved++
			case staff.RegistrationStatusRejected:
				result.Registrations.Rejected++
			}
		}
		return nil
	})

	// 3. Leave applications
	g.Go(func() error {
		applications, err := s.applicationRepo.List(gCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to list leave applications: %w", err)
		}
		result.Leave = summarizeLeave(applications, now)
		return nil
	})

	// 4. Mentor load
	g.Go(func() error {
		mentors, err := s.mentorRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list mentors: %w", err)
		}
		loads := make([]dashboard.MentorLoadResponse, 0, len(mentors))
		for _, m := range mentors {
			loads = append(loads, dashboard.MentorLoadResponse{
				ID:                 m.ID,
				Name:               m.Name,
				CurrentAssignments: m.CurrentAssignments,
			})
		}
		slices.SortStableFunc(loads, func(a, b dashboard.MentorLoadResponse) int {
			return cmp.Compare(b.CurrentAssignments, a.CurrentAssignments)
		})
		result.Mentors = loads
		return nil
	})

	// 5. Substitute load
	g.Go(func() error {
		substitutes, err := s.substituteRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list substitutes: %w", err)
		}
		loads := make([]dashboard.SubstituteLoadResponse, 0, len(substitutes))
		for _, sub := range substitutes {
			loads = append(loads, dashboard.SubstituteLoadResponse{
				ID:          sub.ID,
				Name:        sub.Name,
				CurrentLoad: sub.CurrentLoad,
			})
		}
		slices.SortStableFunc(loads, func(a, b dashboard.SubstituteLoadResponse) int {
			return cmp.Compare(b.CurrentLoad, a.CurrentLoad)
		})
		result.Substitutes = loads
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

func summarizeStaff(members []staff.StaffMember) dashboard.StaffSummaryResponse {
	summary := dashboard.StaffSummaryResponse{
		Total:         len(members),
		UnassignedIDs: []string{},
	}
	for _, m := range members {
		if m.MentorID != nil {
			summary.WithMentor++
		} else {
			summary.WithoutMentor++
			summary.UnassignedIDs = append(summary.UnassignedIDs, m.ID)
		}
		if !m.HasJobDescription {
			summary.MissingJobDescription++
		}
	}
	return summary
}

func summarizeLeave(applications []leave.LeaveApplication, now time.Time) dashboard.LeaveSummaryResponse {
	var summary dashboard.LeaveSummaryResponse
	for _, a := range applications {
		switch a.Status {
		case leave.LeaveApplicationStatusPending:
			summary.Pending++
		case leave.LeaveApplicationStatusApproved:
			summary.Approved++
			if a.Covers(now) {
				summary.OnLeaveToday++
			}
		case leave.LeaveApplicationStatusRejected:
			summary.Rejected++
		}
	}
	return summary
}
