package staff

import (
	"context"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
)

type StaffService interface {
	// Staff
	ListStaff(ctx context.Context) ([]StaffResponse, error)
	GetStaff(ctx context.Context, id string) (StaffResponse, error)
	// Mentor
	ListMentors(ctx context.Context) ([]MentorResponse, error)
	SuggestMentors(ctx context.Context, staffID string) (matching.SuggestionResponse, error)
	AssignMentor(ctx context.Context, req AssignMentorRequest) (StaffResponse, error)
	// Job description
	SaveJobDescription(ctx context.Context, req SaveJobDescriptionRequest) (JobDescriptionResponse, error)
	GetJobDescription(ctx context.Context, staffID string) (JobDescriptionResponse, error)
	// Registration
	SubmitRegistration(ctx context.Context, req SubmitRegistrationRequest) (RegistrationResponse, error)
	ListRegistrations(ctx context.Context, filter RegistrationFilter) ([]RegistrationResponse, error)
	ApproveRegistration(ctx context.Context, req DecideRegistrationRequest) (RegistrationResponse, error)
	RejectRegistration(ctx context.Context, req DecideRegistrationRequest) (RegistrationResponse, error)
}
