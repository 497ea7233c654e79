package attendance

import "context"

type AttendanceService interface {
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceRecordResponse, error)
	ListStaffAttendance(ctx context.Context, staffID string, filter MonthFilter) (StaffAttendanceResponse, error)
	MonthlySummary(ctx context.Context, filter MonthFilter) (MonthlySummaryResponse, error)
}
