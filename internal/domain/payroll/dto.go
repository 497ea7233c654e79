package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
)

// ==================== PAY RATE ====================

type SetPayRateRequest struct {
	StaffID    string          `json:"-"`
	UpdatedBy  string          `json:"-"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	Allowances decimal.Decimal `json:"allowances"`
	Deductions decimal.Decimal `json:"deductions"`
}

func (r *SetPayRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if !r.DailyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_rate",
			Message: "daily_rate must be greater than 0",
		})
	}
	if r.Allowances.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "allowances",
			Message: "allowances must not be negative",
		})
	}
	if r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: "deductions must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayRateResponse struct {
	StaffID    string          `json:"staff_id"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	Allowances decimal.Decimal `json:"allowances"`
	Deductions decimal.Decimal `json:"deductions"`
	// IsDefault is set when the staff member has no rate of their own.
	IsDefault bool       `json:"is_default"`
	UpdatedBy *string    `json:"updated_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ==================== SALARY REPORTS ====================

// monthField validates a required YYYY-MM month.
func monthField(month string) (time.Time, validator.ValidationErrors) {
	if validator.IsEmpty(month) {
		return time.Time{}, validator.ValidationErrors{{Field: "month", Message: "month is required"}}
	}
	parsed, ok := validator.IsValidMonth(month)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return parsed, nil
}

type GenerateSalaryReportsRequest struct {
	Month      string `json:"month"`
	PreparedBy string `json:"-"`

	// Parsed by Validate
	period time.Time
}

func (r *GenerateSalaryReportsRequest) Validate() error {
	var errs validator.ValidationErrors
	r.period, errs = monthField(r.Month)
	if validator.IsEmpty(r.PreparedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "prepared_by",
			Message: "prepared_by is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the first day of the month. Only valid after Validate succeeds.
func (r *GenerateSalaryReportsRequest) Period() time.Time {
	return r.period
}

type GenerateSalaryReportsResponse struct {
	Month       string                 `json:"month"`
	Created     int                    `json:"created"`
	Regenerated int                    `json:"regenerated"`
	Skipped     int                    `json:"skipped"`
	Reports     []SalaryReportResponse `json:"reports"`
}

type SendSalaryReportsRequest struct {
	Month  string `json:"month"`
	SentBy string `json:"-"`

	// Parsed by Validate
	period time.Time
}

func (r *SendSalaryReportsRequest) Validate() error {
	var errs validator.ValidationErrors
	r.period, errs = monthField(r.Month)
	if validator.IsEmpty(r.SentBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "sent_by",
			Message: "sent_by is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the first day of the month. Only valid after Validate succeeds.
func (r *SendSalaryReportsRequest) Period() time.Time {
	return r.period
}

type SendSalaryReportsResponse struct {
	Month string `json:"month"`
	Sent  int    `json:"sent"`
}

type DecideSalaryReportRequest struct {
	ReportID  string
	DecidedBy string
}

func (r *DecideSalaryReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ReportID) {
		errs = append(errs, validator.ValidationError{
			Field:   "report_id",
			Message: "report_id is required",
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

type SalaryReportFilter struct {
	Month  *string
	Status *string
}

func (f *SalaryReportFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Month != nil {
		if _, ok := validator.IsValidMonth(*f.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}
	if f.Status != nil && !SalaryReportStatus(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of draft, pending_approval, approved, rejected",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryReportResponse struct {
	ID          string          `json:"id"`
	StaffID     string          `json:"staff_id"`
	StaffName   *string         `json:"staff_name,omitempty"`
	Month       string          `json:"month"`
	WorkingDays int             `json:"working_days"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	Status      string          `json:"status"`
	PreparedBy  string          `json:"prepared_by"`
	SentAt      *time.Time      `json:"sent_at,omitempty"`
	DecidedBy   *string         `json:"decided_by,omitempty"`
	DecidedAt   *time.Time      `json:"decided_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewSalaryReportResponse(r SalaryReport) SalaryReportResponse {
	return SalaryReportResponse{
		ID:          r.ID,
		StaffID:     r.StaffID,
		StaffName:   r.StaffName,
		Month:       r.PeriodMonth.Format("2006-01"),
		WorkingDays: r.WorkingDays,
		DailyRate:   r.DailyRate,
		BasicSalary: r.BasicSalary,
		Allowances:  r.Allowances,
		Deductions:  r.Deductions,
		NetSalary:   r.NetSalary,
		Status:      string(r.Status),
		PreparedBy:  r.PreparedBy,
		SentAt:      r.SentAt,
		DecidedBy:   r.DecidedBy,
		DecidedAt:   r.DecidedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
