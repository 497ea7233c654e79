package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/payroll"
)

type payRateRepositoryImpl struct {
	rates *table[payroll.PayRate]
}

func NewPayRateRepository() payroll.PayRateRepository {
	return &payRateRepositoryImpl{rates: newTable(func(r payroll.PayRate) payroll.PayRate { return r })}
}

// Save implements payroll.PayRateRepository.
func (r *payRateRepositoryImpl) Save(ctx context.Context, rate payroll.PayRate) (payroll.PayRate, error) {
	rate.UpdatedAt = time.Now()
	r.rates.insert(rate.StaffID, rate)
	return rate, nil
}

// GetByStaffID implements payroll.PayRateRepository.
func (r *payRateRepositoryImpl) GetByStaffID(ctx context.Context, staffID string) (payroll.PayRate, error) {
	return r.rates.get(staffID)
}

type salaryReportRepositoryImpl struct {
	reports *table[payroll.SalaryReport]
}

func NewSalaryReportRepository() payroll.SalaryReportRepository {
	return &salaryReportRepositoryImpl{reports: newTable(cloneSalaryReport)}
}

// Create implements payroll.SalaryReportRepository. A staff member has at
// most one report per month.
func (r *salaryReportRepositoryImpl) Create(ctx context.Context, report payroll.SalaryReport) (payroll.SalaryReport, error) {
	if report.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return payroll.SalaryReport{}, err
		}
		report.ID = id.String()
	}
	now := time.Now()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	inserted := r.reports.insertUnique(report.ID, report, func(existing payroll.SalaryReport) bool {
		return existing.StaffID == report.StaffID && existing.PeriodMonth.Equal(report.PeriodMonth)
	})
	if !inserted {
		return payroll.SalaryReport{}, payroll.ErrSalaryReportExists
	}
	return cloneSalaryReport(report), nil
}

// GetByID implements payroll.SalaryReportRepository.
func (r *salaryReportRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.SalaryReport, error) {
	return r.reports.get(id)
}

// GetByStaffAndPeriod implements payroll.SalaryReportRepository.
func (r *salaryReportRepositoryImpl) GetByStaffAndPeriod(ctx context.Context, staffID string, month time.Time) (payroll.SalaryReport, error) {
	return r.reports.find(func(report payroll.SalaryReport) bool {
		return report.StaffID == staffID && report.PeriodMonth.Equal(month)
	})
}

// GetByStaffID implements payroll.SalaryReportRepository.
func (r *salaryReportRepositoryImpl) GetByStaffID(ctx context.Context, staffID string) ([]payroll.SalaryReport, error) {
	return r.reports.list(func(report payroll.SalaryReport) bool {
		return report.StaffID == staffID
	}), nil
}

// List implements payroll.SalaryReportRepository.
func (r *salaryReportRepositoryImpl) List(ctx context.Context, month *time.Time, status *payroll.SalaryReportStatus) ([]payroll.SalaryReport, error) {
	return r.reports.list(func(report payroll.SalaryReport) bool {
		if month != nil && !report.PeriodMonth.Equal(*month) {
			return false
		}
		return status == nil || report.Status == *status
	}), nil
}

// UpdateIfStatus implements payroll.SalaryReportRepository.
func (r *salaryReportRepositoryImpl) UpdateIfStatus(ctx context.Context, id string, from payroll.SalaryReportStatus, fn func(*payroll.SalaryReport) error) (payroll.SalaryReport, error) {
	var updated payroll.SalaryReport
	err := r.reports.update(id, func(stored *payroll.SalaryReport) error {
		if stored.Status != from {
			return ErrStatusChanged
		}
		report := cloneSalaryReport(*stored)
		if err := fn(&report); err != nil {
			return err
		}
		report.ID = stored.ID
		report.StaffID = stored.StaffID
		report.PeriodMonth = stored.PeriodMonth
		report.CreatedAt = stored.CreatedAt
		report.UpdatedAt = time.Now()
		*stored = report
		updated = cloneSalaryReport(report)
		return nil
	})
	return updated, err
}

func cloneSalaryReport(r payroll.SalaryReport) payroll.SalaryReport {
	r.DecidedBy = cloneStringPtr(r.DecidedBy)
	r.StaffName = cloneStringPtr(r.StaffName)
	r.SentAt = cloneTimePtr(r.SentAt)
	r.DecidedAt = cloneTimePtr(r.DecidedAt)
	return r
}
