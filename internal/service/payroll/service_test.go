package payroll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/attendance"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/payroll"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/fixtures"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/sse"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
	notificationsvc "github.com/tscs-kln/tscs-backend-go/internal/service/notification"
)

type payrollTestEnv struct {
	svc            *payrollServiceImpl
	reportRepo     payroll.SalaryReportRepository
	attendanceRepo attendance.AttendanceRepository
	staffRepo      staff.StaffRepository
	notifications  notification.Service
}

func setupPayrollService(t *testing.T) payrollTestEnv {
	t.Helper()

	env := payrollTestEnv{
		reportRepo:     memory.NewSalaryReportRepository(),
		attendanceRepo: memory.NewAttendanceRepository(),
		staffRepo:      memory.NewStaffRepository(),
		notifications:  notificationsvc.NewNotificationService(memory.NewNotificationRepository(), sse.NewHub()),
	}
	payRateRepo := memory.NewPayRateRepository()
	require.NoError(t, fixtures.SeedDepartment(context.Background(), fixtures.Repositories{
		Users:             memory.NewUserRepository(),
		Staff:             env.staffRepo,
		Registrations:     memory.NewRegistrationRepository(),
		LeaveApplications: memory.NewLeaveApplicationRepository(),
		JobDescriptions:   memory.NewJobDescriptionRepository(),
		Attendance:        env.attendanceRepo,
		PayRates:          payRateRepo,
	}, "seed-password"))

	env.svc = NewPayrollService(env.reportRepo, payRateRepo, env.attendanceRepo, env.staffRepo,
		env.notifications, decimal.NewFromInt(10000)).(*payrollServiceImpl)
	return env
}

func generate(t *testing.T, env payrollTestEnv, month string) payroll.GenerateSalaryReportsResponse {
	t.Helper()
	resp, err := env.svc.GenerateSalaryReports(context.Background(), payroll.GenerateSalaryReportsRequest{
		Month:      month,
		PreparedBy: "coordinator-user",
	})
	require.NoError(t, err)
	return resp
}

func reportFor(t *testing.T, reports []payroll.SalaryReportResponse, staffID string) payroll.SalaryReportResponse {
	t.Helper()
	for _, r := range reports {
		if r.StaffID == staffID {
			return r
		}
	}
	t.Fatalf("no salary report for %s", staffID)
	return payroll.SalaryReportResponse{}
}

func sendAndList(t *testing.T, env payrollTestEnv, month string) []payroll.SalaryReportResponse {
	t.Helper()
	_, err := env.svc.SendToHOD(context.Background(), payroll.SendSalaryReportsRequest{Month: month, SentBy: "coordinator-user"})
	require.NoError(t, err)
	reports, err := env.svc.List(context.Background(), payroll.SalaryReportFilter{Month: &month})
	require.NoError(t, err)
	return reports
}

func TestPayrollService_GenerateSalaryReports(t *testing.T) {
	env := setupPayrollService(t)

	resp := generate(t, env, "2025-10")

	assert.Equal(t, 2, resp.Created)
	assert.Zero(t, resp.Regenerated)
	require.Len(t, resp.Reports, 2)

	silva := reportFor(t, resp.Reports, "STAFF001")
	assert.Equal(t, 7, silva.WorkingDays)
	assert.Equal(t, "84000", silva.BasicSalary.String())
	assert.Equal(t, "5000", silva.Allowances.String())
	assert.Equal(t, "2000", silva.Deductions.String())
	assert.Equal(t, "87000", silva.NetSalary.String())
	assert.Equal(t, "draft", silva.Status)
	require.NotNil(t, silva.StaffName)
	assert.Equal(t, "K.M. Silva", *silva.StaffName)

	fernando := reportFor(t, resp.Reports, "STAFF002")
	assert.Equal(t, 3, fernando.WorkingDays)
	assert.Equal(t, "38400", fernando.NetSalary.String())
}

func TestPayrollService_GenerateSalaryReports_DefaultRate(t *testing.T) {
	env := setupPayrollService(t)
	_, err := env.staffRepo.Create(context.Background(), staff.StaffMember{ID: "STAFF003", Name: "L.N. Herath", Email: "ln.herath@kln.ac.lk"})
	require.NoError(t, err)
	for _, d := range []int{13, 14} {
		_, err := env.attendanceRepo.Create(context.Background(), attendance.AttendanceRecord{
			StaffID: "STAFF003",
			Date:    time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC),
			Session: "Morning",
			Status:  attendance.AttendanceStatusPresent,
			Hours:   2,
		})
		require.NoError(t, err)
	}

	resp := generate(t, env, "2025-10")

	herath := reportFor(t, resp.Reports, "STAFF003")
	assert.Equal(t, "10000", herath.DailyRate.String())
	assert.Equal(t, "20000", herath.NetSalary.String())

	rate, err := env.svc.GetPayRate(context.Background(), "STAFF003")
	require.NoError(t, err)
	assert.True(t, rate.IsDefault)
	assert.Nil(t, rate.UpdatedBy)
}

func TestPayrollService_GenerateSalaryReports_RecomputesOnlyRevisable(t *testing.T) {
	env := setupPayrollService(t)
	generate(t, env, "2025-10")
	reports := sendAndList(t, env, "2025-10")
	silva := reportFor(t, reports, "STAFF001")

	_, err := env.svc.Reject(context.Background(), payroll.DecideSalaryReportRequest{ReportID: silva.ID, DecidedBy: "hod-user"})
	require.NoError(t, err)
	_, err = env.svc.SetPayRate(context.Background(), payroll.SetPayRateRequest{
		StaffID:    "STAFF001",
		UpdatedBy:  "coordinator-user",
		DailyRate:  decimal.RequireFromString("12500.50"),
		Allowances: decimal.NewFromInt(5000),
		Deductions: decimal.Zero,
	})
	require.NoError(t, err)

	resp := generate(t, env, "2025-10")

	assert.Zero(t, resp.Created)
	assert.Equal(t, 1, resp.Regenerated)
	assert.Equal(t, 1, resp.Skipped)
	regenerated := reportFor(t, resp.Reports, "STAFF001")
	assert.Equal(t, silva.ID, regenerated.ID)
	assert.Equal(t, "draft", regenerated.Status)
	assert.Nil(t, regenerated.DecidedBy)
	assert.Nil(t, regenerated.SentAt)
	assert.Equal(t, "92503.5", regenerated.NetSalary.String())
	assert.Equal(t, "pending_approval", reportFor(t, resp.Reports, "STAFF002").Status)
}

func TestPayrollService_SendToHOD(t *testing.T) {
	env := setupPayrollService(t)
	generate(t, env, "2025-10")

	sent, err := env.svc.SendToHOD(context.Background(), payroll.SendSalaryReportsRequest{Month: "2025-10", SentBy: "coordinator-user"})
	require.NoError(t, err)
	assert.Equal(t, 2, sent.Sent)

	pending := "pending_approval"
	reports, err := env.svc.List(context.Background(), payroll.SalaryReportFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.NotNil(t, reports[0].SentAt)

	_, err = env.svc.SendToHOD(context.Background(), payroll.SendSalaryReportsRequest{Month: "2025-10", SentBy: "coordinator-user"})
	assert.ErrorIs(t, err, payroll.ErrNoDraftSalaryReports)
}

func TestPayrollService_Approve_NotifiesStaff(t *testing.T) {
	env := setupPayrollService(t)
	generate(t, env, "2025-10")
	silva := reportFor(t, sendAndList(t, env, "2025-10"), "STAFF001")

	approved, err := env.svc.Approve(context.Background(), payroll.DecideSalaryReportRequest{ReportID: silva.ID, DecidedBy: "hod-user"})

	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, "hod-user", *approved.DecidedBy)

	list, err := env.notifications.GetNotifications(context.Background(), "STAFF001", false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, notification.TypeSalaryApproved, list.Notifications[0].Type)
	assert.Contains(t, list.Notifications[0].Message, "87000.00")

	mine, err := env.svc.ListMine(context.Background(), "STAFF001")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, silva.ID, mine[0].ID)
}

func TestPayrollService_Decide_RequiresPendingApproval(t *testing.T) {
	env := setupPayrollService(t)
	resp := generate(t, env, "2025-10")
	draft := reportFor(t, resp.Reports, "STAFF001")

	_, err := env.svc.Approve(context.Background(), payroll.DecideSalaryReportRequest{ReportID: draft.ID, DecidedBy: "hod-user"})
	assert.ErrorIs(t, err, payroll.ErrSalaryReportNotPending)

	_, err = env.svc.Reject(context.Background(), payroll.DecideSalaryReportRequest{ReportID: "missing", DecidedBy: "hod-user"})
	assert.ErrorIs(t, err, payroll.ErrSalaryReportNotFound)

	mine, err := env.svc.ListMine(context.Background(), "STAFF001")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestPayrollService_Decide_ConcurrentDecisionsCountOnce(t *testing.T) {
	env := setupPayrollService(t)
	generate(t, env, "2025-10")
	silva := reportFor(t, sendAndList(t, env, "2025-10"), "STAFF001")

	var wg sync.WaitGroup
	results := make(chan error, 3)
	for _, decide := range []func(context.Context, payroll.DecideSalaryReportRequest) (payroll.SalaryReportResponse, error){
		env.svc.Approve, env.svc.Reject, env.svc.Approve,
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := decide(context.Background(), payroll.DecideSalaryReportRequest{ReportID: silva.ID, DecidedBy: "hod-user"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, payroll.ErrSalaryReportNotPending)
	}
	assert.Equal(t, 1, succeeded)

	list, err := env.notifications.GetNotifications(context.Background(), "STAFF001", false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
}

func TestPayrollService_SetPayRate_Validation(t *testing.T) {
	env := setupPayrollService(t)

	_, err := env.svc.SetPayRate(context.Background(), payroll.SetPayRateRequest{
		StaffID:    "STAFF001",
		DailyRate:  decimal.Zero,
		Allowances: decimal.NewFromInt(-1),
		Deductions: decimal.NewFromInt(-1),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)

	_, err = env.svc.SetPayRate(context.Background(), payroll.SetPayRateRequest{StaffID: "STAFF999", DailyRate: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestPayrollService_GenerateSalaryReports_Validation(t *testing.T) {
	env := setupPayrollService(t)

	_, err := env.svc.GenerateSalaryReports(context.Background(), payroll.GenerateSalaryReportsRequest{Month: "2025/10"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
	assert.Contains(t, verrs.ToMap(), "prepared_by")
}
