package leave

import "time"

type LeaveApplicationStatus string

const (
	LeaveApplicationStatusPending  LeaveApplicationStatus = "pending"
	LeaveApplicationStatusApproved LeaveApplicationStatus = "approved"
	LeaveApplicationStatusRejected LeaveApplicationStatus = "rejected"
)

func (s LeaveApplicationStatus) IsValid() bool {
	switch s {
	case LeaveApplicationStatusPending, LeaveApplicationStatusApproved, LeaveApplicationStatusRejected:
		return true
	}
	return false
}

// LeaveApplication entity
type LeaveApplication struct {
	ID      string
	StaffID string

	StartDate time.Time
	EndDate   time.Time
	Reason    string

	SubstituteID string
	// SubstituteReleasedAt is set once the leave has ended and the
	// substitute's load was given back.
	SubstituteReleasedAt *time.Time

	Status    LeaveApplicationStatus // 'pending', 'approved', 'rejected'
	DecidedBy *string
	DecidedAt *time.Time

	SubmittedAt time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	StaffName      *string
	SubstituteName *string
}

// Days returns the inclusive calendar length of the leave.
func (l LeaveApplication) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// HasEnded reports whether the last day of leave is before the day of now.
func (l LeaveApplication) HasEnded(now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, l.EndDate.Location())
	return l.EndDate.Before(today)
}

// Covers reports whether the day of now falls within the leave period.
func (l LeaveApplication) Covers(now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, l.StartDate.Location())
	return !today.Before(l.StartDate) && !l.HasEnded(now)
}
