package payroll

import "context"

type PayrollService interface {
	GetPayRate(ctx context.Context, staffID string) (PayRateResponse, error)
	SetPayRate(ctx context.Context, req SetPayRateRequest) (PayRateResponse, error)

	// GenerateSalaryReports prepares a draft report for every staff member
	// for the month. Draft and rejected reports are recomputed, reports sent
	// to or approved by the HOD are left alone.
	GenerateSalaryReports(ctx context.Context, req GenerateSalaryReportsRequest) (GenerateSalaryReportsResponse, error)
	// SendToHOD moves every draft report of the month to pending approval.
	SendToHOD(ctx context.Context, req SendSalaryReportsRequest) (SendSalaryReportsResponse, error)
	Approve(ctx context.Context, req DecideSalaryReportRequest) (SalaryReportResponse, error)
	Reject(ctx context.Context, req DecideSalaryReportRequest) (SalaryReportResponse, error)

	List(ctx context.Context, filter SalaryReportFilter) ([]SalaryReportResponse, error)
	ListMine(ctx context.Context, staffID string) ([]SalaryReportResponse, error)
}
