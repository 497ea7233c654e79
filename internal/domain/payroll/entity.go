package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayRate - per staff member pay configuration
type PayRate struct {
	StaffID    string
	DailyRate  decimal.Decimal
	Allowances decimal.Decimal // monthly
	Deductions decimal.Decimal // monthly
	UpdatedBy  string
	UpdatedAt  time.Time
}

// SalaryReportStatus enum
type SalaryReportStatus string

const (
	SalaryReportStatusDraft           SalaryReportStatus = "draft"
	SalaryReportStatusPendingApproval SalaryReportStatus = "pending_approval"
	SalaryReportStatusApproved        SalaryReportStatus = "approved"
	SalaryReportStatusRejected        SalaryReportStatus = "rejected"
)

func (s SalaryReportStatus) IsValid() bool {
	switch s {
	case SalaryReportStatusDraft, SalaryReportStatusPendingApproval, SalaryReportStatusApproved, SalaryReportStatusRejected:
		return true
	}
	return false
}

// Revisable reports whether the report may still be regenerated.
func (s SalaryReportStatus) Revisable() bool {
	return s == SalaryReportStatusDraft || s == SalaryReportStatusRejected
}

// SalaryReport - monthly salary of a temporary staff member
type SalaryReport struct {
	ID          string
	StaffID     string
	PeriodMonth time.Time // first day of the month, UTC

	WorkingDays int
	DailyRate   decimal.Decimal
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	NetSalary   decimal.Decimal

	Status     SalaryReportStatus
	PreparedBy string
	SentAt     *time.Time
	DecidedBy  *string
	DecidedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	StaffName *string
}

// Compute fills the salary figures from the attended days and the rate:
// basic = days x daily rate, net = basic + allowances - deductions.
func (r *SalaryReport) Compute(workingDays int, rate PayRate) {
	r.WorkingDays = workingDays
	r.DailyRate = rate.DailyRate
	r.BasicSalary = rate.DailyRate.Mul(decimal.NewFromInt(int64(workingDays)))
	r.Allowances = rate.Allowances
	r.Deductions = rate.Deductions
	r.NetSalary = r.BasicSalary.Add(r.Allowances).Sub(r.Deductions)
}
