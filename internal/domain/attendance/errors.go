package attendance

import "errors"

var (
	ErrAttendanceAlreadyRecorded = errors.New("attendance already recorded for this session")
	ErrAttendanceDateInFuture    = errors.New("attendance date is in the future")
)
