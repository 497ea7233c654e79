package user

import "time"

type Role string

const (
	RoleHOD         Role = "hod"         // Head of Department - approves and oversees
	RoleCoordinator Role = "coordinator" // Runs registrations, mentor assignment and leave
	RoleMentor      Role = "mentor"      // Supervises assigned temporary staff
	RoleStaff       Role = "staff"       // Temporary staff member
)

func (r Role) IsValid() bool {
	switch r {
	case RoleHOD, RoleCoordinator, RoleMentor, RoleStaff:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Profile links
	StaffID  *string
	MentorID *string
}

// IsHOD checks if user is head of department
func (u *User) IsHOD() bool {
	return u.Role == RoleHOD
}

// CanApprove checks if user can approve registrations and leave
func (u *User) CanApprove() bool {
	return u.Role == RoleHOD || u.Role == RoleCoordinator
}
