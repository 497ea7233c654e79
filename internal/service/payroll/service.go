package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/attendance"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/payroll"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
)

type payrollServiceImpl struct {
	reportRepo       payroll.SalaryReportRepository
	payRateRepo      payroll.PayRateRepository
	attendanceRepo   attendance.AttendanceRepository
	staffRepo        staff.StaffRepository
	notifier         notification.Notifier
	defaultDailyRate decimal.Decimal
	now              func() time.Time
}

func NewPayrollService(
	reportRepo payroll.SalaryReportRepository,
	payRateRepo payroll.PayRateRepository,
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
	notifier notification.Notifier,
	defaultDailyRate decimal.Decimal,
) payroll.PayrollService {
	return &payrollServiceImpl{
		reportRepo:       reportRepo,
		payRateRepo:      payRateRepo,
		attendanceRepo:   attendanceRepo,
		staffRepo:        staffRepo,
		notifier:         notifier,
		defaultDailyRate: defaultDailyRate,
		now:              time.Now,
	}
}

// ==================== PAY RATE ====================

// GetPayRate implements payroll.PayrollService.
func (s *payrollServiceImpl) GetPayRate(ctx context.Context, staffID string) (payroll.PayRateResponse, error) {
	if _, err := s.getStaff(ctx, staffID); err != nil {
		return payroll.PayRateResponse{}, err
	}

	rate, isDefault, err := s.payRate(ctx, staffID)
	if err != nil {
		return payroll.PayRateResponse{}, err
	}
	return newPayRateResponse(rate, isDefault), nil
}

// SetPayRate implements payroll.PayrollService. The new rate applies to
// reports generated afterwards.
func (s *payrollServiceImpl) SetPayRate(ctx context.Context, req payroll.SetPayRateRequest) (payroll.PayRateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayRateResponse{}, err
	}
	if _, err := s.getStaff(ctx, req.StaffID); err != nil {
		return payroll.PayRateResponse{}, err
	}

	rate, err := s.payRateRepo.Save(ctx, payroll.PayRate{
		StaffID:    req.StaffID,
		DailyRate:  req.DailyRate,
		Allowances: req.Allowances,
		Deductions: req.Deductions,
		UpdatedBy:  req.UpdatedBy,
	})
	if err != nil {
		return payroll.PayRateResponse{}, fmt.Errorf("failed to save pay rate: %w", err)
	}

	slog.Info("pay rate updated", "staff_id", rate.StaffID, "daily_rate", rate.DailyRate.String(), "updated_by", rate.UpdatedBy)
	return newPayRateResponse(rate, false), nil
}

// payRate returns the staff member's own rate, or the department default
// with no allowances or deductions.
func (s *payrollServiceImpl) payRate(ctx context.Context, staffID string) (payroll.PayRate, bool, error) {
	rate, err := s.payRateRepo.GetByStaffID(ctx, staffID)
	if err == nil {
		return rate, false, nil
	}
	if !errors.Is(err, memory.ErrNoRows) {
		return payroll.PayRate{}, false, fmt.Errorf("failed to get pay rate: %w", err)
	}
	return payroll.PayRate{
		StaffID:    staffID,
		DailyRate:  s.defaultDailyRate,
		Allowances: decimal.Zero,
		Deductions: decimal.Zero,
	}, true, nil
}

func newPayRateResponse(rate payroll.PayRate, isDefault bool) payroll.PayRateResponse {
	resp := payroll.PayRateResponse{
		StaffID:    rate.StaffID,
		DailyRate:  rate.DailyRate,
		Allowances: rate.Allowances,
		Deductions: rate.Deductions,
		IsDefault:  isDefault,
	}
	if !isDefault {
		resp.UpdatedBy = &rate.UpdatedBy
		resp.UpdatedAt = &rate.UpdatedAt
	}
	return resp
}

// ==================== SALARY REPORTS ====================

// GenerateSalaryReports implements payroll.PayrollService.
func (s *payrollServiceImpl) GenerateSalaryReports(ctx context.Context, req payroll.GenerateSalaryReportsRequest) (payroll.GenerateSalaryReportsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateSalaryReportsResponse{}, err
	}
	period := req.Period()

	members, err := s.staffRepo.List(ctx)
	if err != nil {
		return payroll.GenerateSalaryReportsResponse{}, fmt.Errorf("failed to list staff: %w", err)
	}

	resp := payroll.GenerateSalaryReportsResponse{Month: period.Format("2006-01")}

	for _, member := range members {
		records, err := s.attendanceRepo.ListByStaff(ctx, member.ID, period, period.AddDate(0, 1, 0))
		if err != nil {
			return payroll.GenerateSalaryReportsResponse{}, fmt.Errorf("failed to get attendance for %s: %w", member.ID, err)
		}
		workingDays := attendance.Summarize(records).AttendedDays

		rate, _, err := s.payRate(ctx, member.ID)
		if err != nil {
			return payroll.GenerateSalaryReportsResponse{}, err
		}

		existing, err := s.reportRepo.GetByStaffAndPeriod(ctx, member.ID, period)
		switch {
		case err == nil:
			if !existing.Status.Revisable() {
				resp.Skipped++
				continue
			}
			_, err = s.reportRepo.UpdateIfStatus(ctx, existing.ID, existing.Status, func(r *payroll.SalaryReport) error {
				r.Compute(workingDays, rate)
				r.Status = payroll.SalaryReportStatusDraft
				r.PreparedBy = req.PreparedBy
				r.SentAt = nil
				r.DecidedBy = nil
				r.DecidedAt = nil
				return nil
			})
			if errors.Is(err, memory.ErrStatusChanged) {
				resp.Skipped++
				continue
			}
			if err != nil {
				return payroll.GenerateSalaryReportsResponse{}, fmt.Errorf("failed to regenerate salary report for %s: %w", member.ID, err)
			}
			resp.Regenerated++

		case errors.Is(err, memory.ErrNoRows):
			report := payroll.SalaryReport{
				StaffID:     member.ID,
				PeriodMonth: period,
				Status:      payroll.SalaryReportStatusDraft,
				PreparedBy:  req.PreparedBy,
			}
			report.Compute(workingDays, rate)
			_, err = s.reportRepo.Create(ctx, report)
			if errors.Is(err, payroll.ErrSalaryReportExists) {
				resp.Skipped++
				continue
			}
			if err != nil {
				return payroll.GenerateSalaryReportsResponse{}, fmt.Errorf("failed to create salary report for %s: %w", member.ID, err)
			}
			resp.Created++

		default:
			return payroll.GenerateSalaryReportsResponse{}, fmt.Errorf("failed to get salary report for %s: %w", member.ID, err)
		}
	}

	reports, err := s.reportRepo.List(ctx, &period, nil)
	if err != nil {
		return payroll.GenerateSalaryReportsResponse{}, fmt.Errorf("failed to list salary reports: %w", err)
	}
	resp.Reports = s.toResponses(ctx, reports)

	slog.Info("salary reports generated",
		"month", resp.Month,
		"created", resp.Created,
		"regenerated", resp.Regenerated,
		"skipped", resp.Skipped,
	)
	return resp, nil
}

// SendToHOD implements payroll.PayrollService.
func (s *payrollServiceImpl) SendToHOD(ctx context.Context, req payroll.SendSalaryReportsRequest) (payroll.SendSalaryReportsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SendSalaryReportsResponse{}, err
	}
	period := req.Period()

	draft := payroll.SalaryReportStatusDraft
	drafts, err := s.reportRepo.List(ctx, &period, &draft)
	if err != nil {
		return payroll.SendSalaryReportsResponse{}, fmt.Errorf("failed to list draft salary reports: %w", err)
	}

	now := s.now()
	sent := 0
	for _, report := range drafts {
		_, err := s.reportRepo.UpdateIfStatus(ctx, report.ID, payroll.SalaryReportStatusDraft, func(r *payroll.SalaryReport) error {
			r.Status = payroll.SalaryReportStatusPendingApproval
			r.SentAt = &now
			return nil
		})
		if errors.Is(err, memory.ErrStatusChanged) {
			continue
		}
		if err != nil {
			return payroll.SendSalaryReportsResponse{}, fmt.Errorf("failed to send salary report %s: %w", report.ID, err)
		}
		sent++
	}
	if sent == 0 {
		return payroll.SendSalaryReportsResponse{}, payroll.ErrNoDraftSalaryReports
	}

	slog.Info("salary reports sent to HOD", "month", period.Format("2006-01"), "count", sent, "sent_by", req.SentBy)
	return payroll.SendSalaryReportsResponse{Month: period.Format("2006-01"), Sent: sent}, nil
}

// Approve implements payroll.PayrollService.
func (s *payrollServiceImpl) Approve(ctx context.Context, req payroll.DecideSalaryReportRequest) (payroll.SalaryReportResponse, error) {
	return s.decide(ctx, req, payroll.SalaryReportStatusApproved)
}

// Reject implements payroll.PayrollService. A rejected report goes back to
// the coordinator, who regenerates it.
func (s *payrollServiceImpl) Reject(ctx context.Context, req payroll.DecideSalaryReportRequest) (payroll.SalaryReportResponse, error) {
	return s.decide(ctx, req, payroll.SalaryReportStatusRejected)
}

func (s *payrollServiceImpl) decide(ctx context.Context, req payroll.DecideSalaryReportRequest, status payroll.SalaryReportStatus) (payroll.SalaryReportResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryReportResponse{}, err
	}

	now := s.now()
	decidedBy := req.DecidedBy
	report, err := s.reportRepo.UpdateIfStatus(ctx, req.ReportID, payroll.SalaryReportStatusPendingApproval, func(r *payroll.SalaryReport) error {
		r.Status = status
		r.DecidedBy = &decidedBy
		r.DecidedAt = &now
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, memory.ErrStatusChanged):
			return payroll.SalaryReportResponse{}, payroll.ErrSalaryReportNotPending
		case errors.Is(err, memory.ErrNoRows):
			return payroll.SalaryReportResponse{}, payroll.ErrSalaryReportNotFound
		}
		return payroll.SalaryReportResponse{}, fmt.Errorf("failed to update salary report: %w", err)
	}

	slog.Info("salary report decided", "report_id", report.ID, "status", status, "decided_by", decidedBy)

	report = s.withName(ctx, report)
	s.notifyDecision(ctx, report)
	return payroll.NewSalaryReportResponse(report), nil
}

// List implements payroll.PayrollService.
func (s *payrollServiceImpl) List(ctx context.Context, filter payroll.SalaryReportFilter) ([]payroll.SalaryReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var month *time.Time
	if filter.Month != nil {
		parsed, _ := time.Parse("2006-01", *filter.Month)
		month = &parsed
	}
	var status *payroll.SalaryReportStatus
	if filter.Status != nil {
		st := payroll.SalaryReportStatus(*filter.Status)
		status = &st
	}

	reports, err := s.reportRepo.List(ctx, month, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary reports: %w", err)
	}
	return s.toResponses(ctx, reports), nil
}

// ListMine implements payroll.PayrollService. Staff only see reports the HOD
// has approved.
func (s *payrollServiceImpl) ListMine(ctx context.Context, staffID string) ([]payroll.SalaryReportResponse, error) {
	reports, err := s.reportRepo.GetByStaffID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary reports: %w", err)
	}

	approved := reports[:0]
	for _, r := range reports {
		if r.Status == payroll.SalaryReportStatusApproved {
			approved = append(approved, r)
		}
	}
	return s.toResponses(ctx, approved), nil
}

func (s *payrollServiceImpl) notifyDecision(ctx context.Context, report payroll.SalaryReport) {
	month := report.PeriodMonth.Format("January 2006")
	req := notification.CreateNotificationRequest{
		RecipientID: report.StaffID,
		Data: map[string]any{
			"report_id": report.ID,
			"month":     report.PeriodMonth.Format("2006-01"),
		},
	}
	switch report.Status {
	case payroll.SalaryReportStatusApproved:
		req.Type = notification.TypeSalaryApproved
		req.Title = "Salary approved"
		req.Message = fmt.Sprintf("Your salary report for %s has been approved: net salary %s", month, report.NetSalary.StringFixed(2))
	default:
		req.Type = notification.TypeSalaryRejected
		req.Title = "Salary report returned"
		req.Message = fmt.Sprintf("Your salary report for %s was returned for correction", month)
	}

	if err := s.notifier.Notify(ctx, req); err != nil {
		slog.Warn("failed to send notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
	}
}

func (s *payrollServiceImpl) getStaff(ctx context.Context, id string) (staff.StaffMember, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	return member, nil
}

func (s *payrollServiceImpl) toResponses(ctx context.Context, reports []payroll.SalaryReport) []payroll.SalaryReportResponse {
	responses := make([]payroll.SalaryReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, payroll.NewSalaryReportResponse(s.withName(ctx, r)))
	}
	return responses
}

func (s *payrollServiceImpl) withName(ctx context.Context, r payroll.SalaryReport) payroll.SalaryReport {
	if member, err := s.staffRepo.GetByID(ctx, r.StaffID); err == nil {
		r.StaffName = &member.Name
	}
	return r
}
