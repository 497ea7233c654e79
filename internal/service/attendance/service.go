package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/attendance"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	staffRepo      staff.StaffRepository
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
		now:            time.Now,
	}
}

// RecordAttendance implements attendance.AttendanceService.
func (s *attendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}

	if _, err := s.getStaff(ctx, req.StaffID); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}

	date := req.SessionDate()
	y, m, d := s.now().Date()
	if date.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return attendance.AttendanceRecordResponse{}, attendance.ErrAttendanceDateInFuture
	}

	var remarks *string
	if req.Remarks != nil {
		if trimmed := strings.TrimSpace(*req.Remarks); trimmed != "" {
			remarks = &trimmed
		}
	}

	hours := req.Hours
	status := attendance.AttendanceStatus(req.Status)
	if !status.Attended() {
		hours = 0
	}

	record, err := s.attendanceRepo.Create(ctx, attendance.AttendanceRecord{
		StaffID:    req.StaffID,
		Date:       date,
		Module:     strings.TrimSpace(req.Module),
		Session:    strings.TrimSpace(req.Session),
		Status:     status,
		Hours:      hours,
		Remarks:    remarks,
		RecordedBy: req.RecordedBy,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceAlreadyRecorded) {
			return attendance.AttendanceRecordResponse{}, err
		}
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to record attendance: %w", err)
	}

	slog.Info("attendance recorded", "staff_id", record.StaffID, "date", req.Date, "session", record.Session, "status", record.Status)
	return attendance.NewAttendanceRecordResponse(record), nil
}

// ListStaffAttendance implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ListStaffAttendance(ctx context.Context, staffID string, filter attendance.MonthFilter) (attendance.StaffAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.StaffAttendanceResponse{}, err
	}

	member, err := s.getStaff(ctx, staffID)
	if err != nil {
		return attendance.StaffAttendanceResponse{}, err
	}

	from, to := filter.Period(s.now())
	records, err := s.attendanceRepo.ListByStaff(ctx, staffID, from, to)
	if err != nil {
		return attendance.StaffAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	responses := make([]attendance.AttendanceRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewAttendanceRecordResponse(rec))
	}

	return attendance.StaffAttendanceResponse{
		StaffID:   member.ID,
		StaffName: member.Name,
		Month:     from.Format("2006-01"),
		Summary:   attendance.NewSummaryResponse(attendance.Summarize(records)),
		Records:   responses,
	}, nil
}

// MonthlySummary implements attendance.AttendanceService. Every staff member
// on the roster is listed, including those without records.
func (s *attendanceServiceImpl) MonthlySummary(ctx context.Context, filter attendance.MonthFilter) (attendance.MonthlySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	members, err := s.staffRepo.List(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list staff: %w", err)
	}

	from, to := filter.Period(s.now())
	records, err := s.attendanceRepo.ListByPeriod(ctx, from, to)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	byStaff := make(map[string][]attendance.AttendanceRecord)
	for _, rec := range records {
		byStaff[rec.StaffID] = append(byStaff[rec.StaffID], rec)
	}

	summaries := make([]attendance.StaffSummaryResponse, 0, len(members))
	for _, member := range members {
		summaries = append(summaries, attendance.StaffSummaryResponse{
			StaffID:   member.ID,
			StaffName: member.Name,
			Summary:   attendance.NewSummaryResponse(attendance.Summarize(byStaff[member.ID])),
		})
	}

	return attendance.MonthlySummaryResponse{
		Month: from.Format("2006-01"),
		Staff: summaries,
	}, nil
}

func (s *attendanceServiceImpl) getStaff(ctx context.Context, id string) (staff.StaffMember, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNoRows) {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	return member, nil
}
