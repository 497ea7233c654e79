package payroll

import "errors"

var (
	ErrSalaryReportNotFound   = errors.New("salary report not found")
	ErrSalaryReportNotPending = errors.New("salary report is not pending approval")
	ErrSalaryReportExists     = errors.New("salary report already exists for this month")
	ErrNoDraftSalaryReports   = errors.New("no draft salary reports for this month")
)
