package attendance

import (
	"context"
	"time"
)

// AttendanceRepository - interface for session attendance records
type AttendanceRepository interface {
	// Create fails with ErrAttendanceAlreadyRecorded when the staff member
	// already has a record for the same date and session.
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	// ListByStaff returns the staff member's records dated within [from, to).
	ListByStaff(ctx context.Context, staffID string, from, to time.Time) ([]AttendanceRecord, error)
	// ListByPeriod returns every record dated within [from, to).
	ListByPeriod(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error)
}
