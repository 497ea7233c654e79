package staff

import (
	"context"
)

// StaffRepository - interface for the temporary staff roster
type StaffRepository interface {
	Create(ctx context.Context, member StaffMember) (StaffMember, error)
	GetByID(ctx context.Context, id string) (StaffMember, error)
	GetByEmail(ctx context.Context, email string) (StaffMember, error)
	List(ctx context.Context) ([]StaffMember, error)
	// SwapMentor sets the staff member's mentor and returns the one it replaced.
	SwapMentor(ctx context.Context, staffID string, mentorID string) (previous *string, err error)
	SetHasJobDescription(ctx context.Context, staffID string, has bool) error
}

// MentorRepository - interface for the mentor roster
type MentorRepository interface {
	GetByID(ctx context.Context, id string) (Mentor, error)
	List(ctx context.Context) ([]Mentor, error)
	AdjustAssignments(ctx context.Context, id string, delta int) error
}

// SubstituteRepository - interface for the substitute staff roster
type SubstituteRepository interface {
	GetByID(ctx context.Context, id string) (SubstituteStaff, error)
	List(ctx context.Context) ([]SubstituteStaff, error)
	AdjustLoad(ctx context.Context, id string, delta int) error
}

// RegistrationRepository - interface for registration requests
type RegistrationRepository interface {
	Create(ctx context.Context, req RegistrationRequest) (RegistrationRequest, error)
	GetByID(ctx context.Context, id string) (RegistrationRequest, error)
	List(ctx context.Context, status *RegistrationStatus) ([]RegistrationRequest, error)
	// UpdateIfStatus applies fn only while the request is still in status from.
	UpdateIfStatus(ctx context.Context, id string, from RegistrationStatus, fn func(*RegistrationRequest) error) (RegistrationRequest, error)
}

// JobDescriptionRepository - one job description per staff member
type JobDescriptionRepository interface {
	Save(ctx context.Context, jd JobDescription) (JobDescription, error)
	GetByStaffID(ctx context.Context, staffID string) (JobDescription, error)
}
