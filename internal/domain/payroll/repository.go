package payroll

import (
	"context"
	"time"
)

// PayRateRepository - one pay rate per staff member
type PayRateRepository interface {
	Save(ctx context.Context, rate PayRate) (PayRate, error)
	GetByStaffID(ctx context.Context, staffID string) (PayRate, error)
}

// SalaryReportRepository - interface for monthly salary reports
type SalaryReportRepository interface {
	Create(ctx context.Context, report SalaryReport) (SalaryReport, error)
	GetByID(ctx context.Context, id string) (SalaryReport, error)
	GetByStaffAndPeriod(ctx context.Context, staffID string, month time.Time) (SalaryReport, error)
	GetByStaffID(ctx context.Context, staffID string) ([]SalaryReport, error)
	// List filters by month and status; nil matches any.
	List(ctx context.Context, month *time.Time, status *SalaryReportStatus) ([]SalaryReport, error)
	// UpdateIfStatus applies fn only while the report is still in status
	// from, and returns the stored result.
	UpdateIfStatus(ctx context.Context, id string, from SalaryReportStatus, fn func(*SalaryReport) error) (SalaryReport, error)
}
