package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/attendance"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/interview"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/payroll"
)

func october(day int) time.Time {
	return time.Date(2025, time.October, day, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceRepository_OneRecordPerSession(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	_, err := repo.Create(ctx, attendance.AttendanceRecord{StaffID: "STAFF001", Date: october(1), Session: "Morning", Status: attendance.AttendanceStatusPresent})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.AttendanceRecord{StaffID: "STAFF001", Date: october(1), Session: "MORNING", Status: attendance.AttendanceStatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyRecorded)

	_, err = repo.Create(ctx, attendance.AttendanceRecord{StaffID: "STAFF002", Date: october(1), Session: "Morning", Status: attendance.AttendanceStatusPresent})
	assert.NoError(t, err)
}

func TestAttendanceRepository_ListByPeriod(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	for _, d := range []time.Time{october(1), october(31), time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)} {
		_, err := repo.Create(ctx, attendance.AttendanceRecord{StaffID: "STAFF001", Date: d, Session: "Morning"})
		require.NoError(t, err)
	}

	records, err := repo.ListByStaff(ctx, "STAFF001", october(1), october(1).AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = repo.ListByPeriod(ctx, october(2), october(1).AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Date.Equal(october(31)))
}

func TestSalaryReportRepository_OnePerStaffAndMonth(t *testing.T) {
	ctx := context.Background()
	repo := NewSalaryReportRepository()

	created, err := repo.Create(ctx, payroll.SalaryReport{StaffID: "STAFF001", PeriodMonth: october(1), Status: payroll.SalaryReportStatusDraft})
	require.NoError(t, err)

	_, err = repo.Create(ctx, payroll.SalaryReport{StaffID: "STAFF001", PeriodMonth: october(1)})
	assert.ErrorIs(t, err, payroll.ErrSalaryReportExists)

	got, err := repo.GetByStaffAndPeriod(ctx, "STAFF001", october(1))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByStaffAndPeriod(ctx, "STAFF001", october(1).AddDate(0, 1, 0))
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestSalaryReportRepository_UpdateIfStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewSalaryReportRepository()
	created, err := repo.Create(ctx, payroll.SalaryReport{StaffID: "STAFF001", PeriodMonth: october(1), Status: payroll.SalaryReportStatusDraft})
	require.NoError(t, err)

	updated, err := repo.UpdateIfStatus(ctx, created.ID, payroll.SalaryReportStatusDraft, func(r *payroll.SalaryReport) error {
		r.Status = payroll.SalaryReportStatusPendingApproval
		r.NetSalary = decimal.NewFromInt(87000)
		r.StaffID = "STAFF999"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.SalaryReportStatusPendingApproval, updated.Status)
	assert.Equal(t, "STAFF001", updated.StaffID)

	_, err = repo.UpdateIfStatus(ctx, created.ID, payroll.SalaryReportStatusDraft, func(r *payroll.SalaryReport) error { return nil })
	assert.ErrorIs(t, err, ErrStatusChanged)

	boom := errors.New("boom")
	_, err = repo.UpdateIfStatus(ctx, created.ID, payroll.SalaryReportStatusPendingApproval, func(r *payroll.SalaryReport) error {
		r.Status = payroll.SalaryReportStatusApproved
		return boom
	})
	assert.ErrorIs(t, err, boom)

	pending := payroll.SalaryReportStatusPendingApproval
	month := october(1)
	reports, err := repo.List(ctx, &month, &pending)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "87000", reports[0].NetSalary.String())
}

func TestInterviewRepository_NumbersInOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewInterviewRepository()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, interview.Interview{Status: interview.InterviewStatusUpcoming})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	interviews, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, interviews, 10)
	for n, i := range interviews {
		assert.Equal(t, n+1, i.Number)
	}
}

func TestInterviewRepository_UpdateReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewInterviewRepository()
	created, err := repo.Create(ctx, interview.Interview{
		Candidates: []interview.Candidate{{ID: "C001", Name: "H.M. Perera"}},
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, func(i *interview.Interview) error {
		i.Candidates[0].Marks = &interview.Marks{Scores: []int{10, 20, 30}, Total: 60}
		i.Number = 42
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Number)

	updated.Candidates[0].Marks.Scores[0] = 99
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, got.Candidates[0].Marks.Scores)

	_, err = repo.Update(ctx, created.ID, func(i *interview.Interview) error {
		i.Candidates[0].Marks = nil
		return interview.ErrShortlistSubmitted
	})
	assert.ErrorIs(t, err, interview.ErrShortlistSubmitted)
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Candidates[0].Marks)
}
