package attendance

import (
	"math"
	"time"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusLate, AttendanceStatusAbsent:
		return true
	}
	return false
}

// Attended reports whether the session counts towards the attendance rate.
func (s AttendanceStatus) Attended() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusLate
}

// AttendanceRecord is one teaching session of a temporary staff member,
// recorded by a coordinator.
type AttendanceRecord struct {
	ID         string
	StaffID    string
	Date       time.Time
	Module     string
	Session    string
	Status     AttendanceStatus
	Hours      float64
	Remarks    *string
	RecordedBy string
	CreatedAt  time.Time
}

// Summary aggregates a set of attendance records.
type Summary struct {
	Sessions     int
	Present      int
	Late         int
	Absent       int
	Hours        float64
	AttendedDays int
}

// Summarize counts records by status. AttendedDays counts distinct dates with
// at least one present or late session.
func Summarize(records []AttendanceRecord) Summary {
	var s Summary
	days := make(map[time.Time]struct{})
	for _, rec := range records {
		s.Sessions++
		switch rec.Status {
		case AttendanceStatusPresent:
			s.Present++
		case AttendanceStatusLate:
			s.Late++
		case AttendanceStatusAbsent:
			s.Absent++
		}
		if rec.Status.Attended() {
			s.Hours += rec.Hours
			days[rec.Date] = struct{}{}
		}
	}
	s.AttendedDays = len(days)
	return s
}

// Rate is the share of attended sessions as a percentage rounded to one
// decimal place. No sessions gives 0.
func (s Summary) Rate() float64 {
	if s.Sessions == 0 {
		return 0
	}
	rate := float64(s.Present+s.Late) / float64(s.Sessions) * 100
	return math.Round(rate*10) / 10
}
