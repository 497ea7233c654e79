package staff

import (
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
)

// StaffMember is a temporary staff member of the department.
type StaffMember struct {
	ID                string
	Name              string
	Email             string
	Phone             *string
	PreferredSubjects []string
	MentorID          *string
	HasJobDescription bool
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Relationships (for responses)
	MentorName *string
}

// AsTarget projects the staff member onto the matcher's target shape.
func (s StaffMember) AsTarget() matching.Target {
	return matching.Target{
		ID:       s.ID,
		Name:     s.Name,
		Subjects: s.PreferredSubjects,
	}
}

// Mentor is a permanent academic who supervises temporary staff.
type Mentor struct {
	ID                 string
	Name               string
	Email              string
	Specializations    []string
	CurrentAssignments int
}

func (m Mentor) AsCandidate() matching.Candidate {
	return matching.Candidate{
		ID:       m.ID,
		Name:     m.Name,
		Subjects: m.Specializations,
		Load:     m.CurrentAssignments,
	}
}

// SubstituteStaff can cover classes for a staff member on leave.
type SubstituteStaff struct {
	ID                string
	Name              string
	AvailableSubjects []string
	CurrentLoad       int // classes currently covered
}

func (s SubstituteStaff) AsCandidate() matching.Candidate {
	return matching.Candidate{
		ID:       s.ID,
		Name:     s.Name,
		Subjects: s.AvailableSubjects,
		Load:     s.CurrentLoad,
	}
}

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusApproved RegistrationStatus = "approved"
	RegistrationStatusRejected RegistrationStatus = "rejected"
)

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusApproved, RegistrationStatusRejected:
		return true
	}
	return false
}

// RegistrationRequest is a sign-up awaiting coordinator review.
type RegistrationRequest struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	PreferredSubjects []string
	PasswordHash      *string
	Status            RegistrationStatus
	SubmittedAt       time.Time
	DecidedBy         *string
	DecidedAt         *time.Time

	// Set once approved
	StaffID *string
}
