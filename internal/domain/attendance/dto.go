package attendance

import (
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
)

type RecordAttendanceRequest struct {
	StaffID    string  `json:"-"`
	RecordedBy string  `json:"-"`
	Date       string  `json:"date"`
	Module     string  `json:"module"`
	Session    string  `json:"session"`
	Status     string  `json:"status"`
	Hours      float64 `json:"hours"`
	Remarks    *string `json:"remarks"`

	// Parsed by Validate
	date time.Time
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	var ok bool
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if r.date, ok = validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Module) {
		errs = append(errs, validator.ValidationError{
			Field:   "module",
			Message: "module is required",
		})
	}
	if validator.IsEmpty(r.Session) {
		errs = append(errs, validator.ValidationError{
			Field:   "session",
			Message: "session is required",
		})
	}
	if !AttendanceStatus(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, late, absent",
		})
	}

	switch {
	case r.Hours < 0 || r.Hours > 12:
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be between 0 and 12",
		})
	case r.Hours == 0 && AttendanceStatus(r.Status).Attended():
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours are required for an attended session",
		})
	}

	if r.Remarks != nil && len(*r.Remarks) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SessionDate returns the parsed date. Only valid after Validate succeeds.
func (r *RecordAttendanceRequest) SessionDate() time.Time {
	return r.date
}

// MonthFilter selects a calendar month as YYYY-MM. An empty month means the
// current one.
type MonthFilter struct {
	Month string
}

func (f *MonthFilter) Validate() error {
	if f.Month == "" {
		return nil
	}
	if _, ok := validator.IsValidMonth(f.Month); !ok {
		return validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return nil
}

// Period returns the first day of the month and the first day of the next
// one, resolving an empty month against now.
func (f *MonthFilter) Period(now time.Time) (time.Time, time.Time) {
	from, ok := validator.IsValidMonth(f.Month)
	if !ok {
		y, m, _ := now.Date()
		from = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
	return from, from.AddDate(0, 1, 0)
}

type AttendanceRecordResponse struct {
	ID         string    `json:"id"`
	StaffID    string    `json:"staff_id"`
	Date       string    `json:"date"`
	Module     string    `json:"module"`
	Session    string    `json:"session"`
	Status     string    `json:"status"`
	Hours      float64   `json:"hours"`
	Remarks    *string   `json:"remarks,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAttendanceRecordResponse(r AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ID:         r.ID,
		StaffID:    r.StaffID,
		Date:       r.Date.Format("2006-01-02"),
		Module:     r.Module,
		Session:    r.Session,
		Status:     string(r.Status),
		Hours:      r.Hours,
		Remarks:    r.Remarks,
		RecordedBy: r.RecordedBy,
		CreatedAt:  r.CreatedAt,
	}
}

type SummaryResponse struct {
	Sessions       int     `json:"total_sessions"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	Absent         int     `json:"absent"`
	Hours          float64 `json:"total_hours"`
	AttendedDays   int     `json:"attended_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		Sessions:       s.Sessions,
		Present:        s.Present,
		Late:           s.Late,
		Absent:         s.Absent,
		Hours:          s.Hours,
		AttendedDays:   s.AttendedDays,
		AttendanceRate: s.Rate(),
	}
}

type StaffAttendanceResponse struct {
	StaffID   string                     `json:"staff_id"`
	StaffName string                     `json:"staff_name"`
	Month     string                     `json:"month"`
	Summary   SummaryResponse            `json:"summary"`
	Records   []AttendanceRecordResponse `json:"records"`
}

type StaffSummaryResponse struct {
	StaffID   string          `json:"staff_id"`
	StaffName string          `json:"staff_name"`
	Summary   SummaryResponse `json:"summary"`
}

type MonthlySummaryResponse struct {
	Month string                 `json:"month"`
	Staff []StaffSummaryResponse `json:"staff"`
}
