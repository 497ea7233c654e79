package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	records *table[attendance.AttendanceRecord]
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{records: newTable(cloneAttendanceRecord)}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.AttendanceRecord{}, err
		}
		record.ID = id.String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	inserted := r.records.insertUnique(record.ID, record, func(existing attendance.AttendanceRecord) bool {
		return existing.StaffID == record.StaffID &&
			existing.Date.Equal(record.Date) &&
			strings.EqualFold(existing.Session, record.Session)
	})
	if !inserted {
		return attendance.AttendanceRecord{}, attendance.ErrAttendanceAlreadyRecorded
	}
	return cloneAttendanceRecord(record), nil
}

// ListByStaff implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByStaff(ctx context.Context, staffID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	return r.records.list(func(rec attendance.AttendanceRecord) bool {
		return rec.StaffID == staffID && inPeriod(rec.Date, from, to)
	}), nil
}

// ListByPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByPeriod(ctx context.Context, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	return r.records.list(func(rec attendance.AttendanceRecord) bool {
		return inPeriod(rec.Date, from, to)
	}), nil
}

func inPeriod(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func cloneAttendanceRecord(r attendance.AttendanceRecord) attendance.AttendanceRecord {
	r.Remarks = cloneStringPtr(r.Remarks)
	return r
}
