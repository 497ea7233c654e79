package leave

import (
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	StaffID      string `json:"-"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
	SubstituteID string `json:"substitute_id"`

	// Parsed by Validate
	start time.Time
	end   time.Time
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	// Dates
	startOK, endOK := false, false
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if r.start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if r.end, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && r.end.Before(r.start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	// Substitute
	if validator.IsEmpty(r.SubstituteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "substitute_id",
			Message: "substitute_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Period returns the parsed start and end dates. Only valid after Validate succeeds.
func (r *ApplyLeaveRequest) Period() (time.Time, time.Time) {
	return r.start, r.end
}

type LeaveApplicationFilter struct {
	Status *string
}

func (f *LeaveApplicationFilter) Validate() error {
	if f.Status == nil {
		return nil
	}
	if !LeaveApplicationStatus(*f.Status).IsValid() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected",
		}}
	}
	return nil
}

type DecideLeaveRequest struct {
	ApplicationID string
	DecidedBy     string
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApplicationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "application_id",
			Message: "application_id is required",
		})
	}
	if validator.IsEmpty(r.DecidedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "decided_by",
			Message: "decided_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveApplicationResponse struct {
	ID             string     `json:"id"`
	StaffID        string     `json:"staff_id"`
	StaffName      *string    `json:"staff_name,omitempty"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Days           int        `json:"days"`
	Reason         string     `json:"reason"`
	SubstituteID   string     `json:"substitute_id"`
	SubstituteName *string    `json:"substitute_name,omitempty"`
	Status         string     `json:"status"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	DecidedBy      *string    `json:"decided_by,omitempty"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	ReleasedAt     *time.Time `json:"substitute_released_at,omitempty"`
}

func NewLeaveApplicationResponse(l LeaveApplication) LeaveApplicationResponse {
	return LeaveApplicationResponse{
		ID:             l.ID,
		StaffID:        l.StaffID,
		StaffName:      l.StaffName,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		Days:           l.Days(),
		Reason:         l.Reason,
		SubstituteID:   l.SubstituteID,
		SubstituteName: l.SubstituteName,
		Status:         string(l.Status),
		SubmittedAt:    l.SubmittedAt,
		DecidedBy:      l.DecidedBy,
		DecidedAt:      l.DecidedAt,
		ReleasedAt:     l.SubstituteReleasedAt,
	}
}
