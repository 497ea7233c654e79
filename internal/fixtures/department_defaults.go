package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/attendance"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/interview"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/payroll"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func strPtr(s string) *string { return &s }

// ==========================================
// REPOSITORIES
// ==========================================

// Repositories groups the stores SeedDepartment writes to. Mentor and
// substitute rosters are seeded through their constructors instead.
// Attendance, PayRates and Interviews are optional and skipped when nil.
type Repositories struct {
	Users             user.UserRepository
	Staff             staff.StaffRepository
	Registrations     staff.RegistrationRepository
	LeaveApplications leave.LeaveApplicationRepository
	JobDescriptions   staff.JobDescriptionRepository
	Attendance        attendance.AttendanceRepository
	PayRates          payroll.PayRateRepository
	Interviews        interview.InterviewRepository
}

// ==========================================
// DEFAULT MENTORS
// ==========================================

// GetDefaultMentors returns the department's permanent academics available as mentors
func GetDefaultMentors() []staff.Mentor {
	return []staff.Mentor{
		{
			ID:                 "M001",
			Name:               "Dr. T. Mahanama",
			Email:              "thilini.mahanama@kln.ac.lk",
			Specializations:    []string{"Marketing Management", "Consumer Behavior", "Brand Management"},
			CurrentAssignments: 2,
		},
		{
			ID:                 "M002",
			Name:               "Dr. R. Fernando",
			Email:              "r.fernando@kln.ac.lk",
			Specializations:    []string{"Operations Management", "Supply Chain Management", "Quality Management"},
			CurrentAssignments: 3,
		},
		{
			ID:                 "M003",
			Name:               "Dr. S. Perera",
			Email:              "s.perera@kln.ac.lk",
			Specializations:    []string{"Human Resource Management", "Organizational Behavior", "Strategic Management"},
			CurrentAssignments: 1,
		},
		{
			ID:                 "M004",
			Name:               "Dr. K. Silva",
			Email:              "k.silva@kln.ac.lk",
			Specializations:    []string{"Marketing Management", "Digital Marketing", "E-Commerce"},
			CurrentAssignments: 2,
		},
	}
}

// ==========================================
// DEFAULT SUBSTITUTES
// ==========================================

// GetDefaultSubstitutes returns staff able to cover classes during leave
func GetDefaultSubstitutes() []staff.SubstituteStaff {
	return []staff.SubstituteStaff{
		{ID: "SUB001", Name: "A.B. Perera", AvailableSubjects: []string{"Marketing Management", "Consumer Behavior", "Brand Management"}, CurrentLoad: 2},
		{ID: "SUB002", Name: "N.P. Jayawardena", AvailableSubjects: []string{"Operations Management", "Supply Chain Management"}, CurrentLoad: 1},
		{ID: "SUB003", Name: "S.K. Fernando", AvailableSubjects: []string{"Marketing Management", "Digital Marketing"}, CurrentLoad: 3},
		{ID: "SUB004", Name: "R.T. Silva", AvailableSubjects: []string{"Human Resource Management", "Organizational Behavior"}, CurrentLoad: 2},
	}
}

// ==========================================
// DEFAULT STAFF
// ==========================================

// GetDefaultStaff returns the temporary staff already on the roster
func GetDefaultStaff() []staff.StaffMember {
	return []staff.StaffMember{
		{
			ID:                "STAFF001",
			Name:              "K.M. Silva",
			Email:             "km.silva@kln.ac.lk",
			Phone:             strPtr("+94 77 123 4567"),
			PreferredSubjects: []string{"Marketing Management", "Brand Management"},
			MentorID:          strPtr("M001"),
			HasJobDescription: true,
		},
		{
			ID:                "STAFF002",
			Name:              "R.P. Fernando",
			Email:             "rp.fernando@kln.ac.lk",
			Phone:             strPtr("+94 71 234 5678"),
			PreferredSubjects: []string{"Operations Management", "Supply Chain"},
			HasJobDescription: false,
		},
	}
}

// ==========================================
// DEFAULT REGISTRATIONS
// ==========================================

// GetDefaultRegistrations returns sign-ups awaiting coordinator review
func GetDefaultRegistrations(now time.Time) []staff.RegistrationRequest {
	return []staff.RegistrationRequest{
		{
			ID:                "REQ001",
			Name:              "N.P. Jayawardena",
			Email:             "np.jayawardena@gmail.com",
			Phone:             "+94 77 345 6789",
			PreferredSubjects: []string{"Marketing Management", "Consumer Behavior"},
			Status:            staff.RegistrationStatusPending,
			SubmittedAt:       now.AddDate(0, 0, -2),
		},
		{
			ID:                "REQ002",
			Name:              "S.K. Fernando",
			Email:             "sk.fernando@gmail.com",
			Phone:             "+94 76 456 7890",
			PreferredSubjects: []string{"Operations Management", "Quality Management"},
			Status:            staff.RegistrationStatusPending,
			SubmittedAt:       now.AddDate(0, 0, -1),
		},
	}
}

// ==========================================
// DEFAULT LEAVE APPLICATIONS
// ==========================================

// GetDefaultLeaveApplications returns leave history for the seeded staff
func GetDefaultLeaveApplications() []leave.LeaveApplication {
	return []leave.LeaveApplication{
		{
			ID:           "LV001",
			StaffID:      "STAFF001",
			StartDate:    time.Date(2025, time.October, 25, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, time.October, 27, 0, 0, 0, 0, time.UTC),
			Reason:       "Personal matter",
			SubstituteID: "SUB001",
			Status:       leave.LeaveApplicationStatusApproved,

			// SUB001's seeded load already excludes this finished cover.
			SubstituteReleasedAt: timePtr(time.Date(2025, time.October, 28, 0, 0, 0, 0, time.UTC)),
		},
	}
}

// GetDefaultJobDescriptions returns the job descriptions behind the
// HasJobDescription flag of the default staff.
func GetDefaultJobDescriptions() []staff.JobDescription {
	return []staff.JobDescription{
		{
			StaffID: "STAFF001",
			Tasks: []staff.JobTask{
				{Description: "Conduct tutorials for Marketing Management (MKT 2103)", Type: staff.JobTaskAcademic},
				{Description: "Assist with Brand Management practical sessions", Type: staff.JobTaskAcademic},
				{Description: "Maintain attendance records for first year tutorial groups", Type: staff.JobTaskAdministrative},
			},
			CreatedBy: "coordinator@kln.ac.lk",
		},
	}
}

// ==========================================
// DEFAULT ATTENDANCE & PAY RATES
// ==========================================

// GetDefaultAttendance returns October 2025 teaching sessions of the default staff
func GetDefaultAttendance() []attendance.AttendanceRecord {
	day := func(d int) time.Time { return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC) }
	session := func(staffID string, d int, module string, status attendance.AttendanceStatus, hours float64) attendance.AttendanceRecord {
		return attendance.AttendanceRecord{
			StaffID:    staffID,
			Date:       day(d),
			Module:     module,
			Session:    "Morning",
			Status:     status,
			Hours:      hours,
			RecordedBy: "coordinator@kln.ac.lk",
		}
	}
	return []attendance.AttendanceRecord{
		session("STAFF001", 1, "MKT 2103", attendance.AttendanceStatusPresent, 3),
		session("STAFF001", 2, "MKT 2103", attendance.AttendanceStatusPresent, 3),
		session("STAFF001", 3, "MKT 3206", attendance.AttendanceStatusPresent, 2),
		session("STAFF001", 6, "MKT 2103", attendance.AttendanceStatusPresent, 3),
		session("STAFF001", 7, "MKT 3206", attendance.AttendanceStatusLate, 1.5),
		session("STAFF001", 8, "MKT 2103", attendance.AttendanceStatusPresent, 3),
		session("STAFF001", 9, "MKT 3206", attendance.AttendanceStatusAbsent, 0),
		session("STAFF001", 10, "MKT 2103", attendance.AttendanceStatusPresent, 3),
		session("STAFF002", 1, "OPM 2201", attendance.AttendanceStatusPresent, 2),
		session("STAFF002", 2, "OPM 2201", attendance.AttendanceStatusPresent, 2),
		session("STAFF002", 3, "OPM 3104", attendance.AttendanceStatusPresent, 2),
		session("STAFF002", 6, "OPM 2201", attendance.AttendanceStatusAbsent, 0),
	}
}

// GetDefaultPayRates returns the daily rates agreed with the default staff
func GetDefaultPayRates() []payroll.PayRate {
	return []payroll.PayRate{
		{StaffID: "STAFF001", DailyRate: decimal.NewFromInt(12000), Allowances: decimal.NewFromInt(5000), Deductions: decimal.NewFromInt(2000), UpdatedBy: "coordinator@kln.ac.lk"},
		{StaffID: "STAFF002", DailyRate: decimal.NewFromInt(12800), Allowances: decimal.Zero, Deductions: decimal.Zero, UpdatedBy: "coordinator@kln.ac.lk"},
	}
}

// ==========================================
// DEFAULT INTERVIEWS
// ==========================================

// GetDefaultInterviews returns one finished interview with marks and one
// upcoming interview, relative to now.
func GetDefaultInterviews(now time.Time) []interview.Interview {
	marks := func(scores ...int) *interview.Marks {
		total := 0
		for _, s := range scores {
			total += s
		}
		return &interview.Marks{Scores: scores, Total: total, MarkedBy: "coordinator@kln.ac.lk", MarkedAt: now.AddDate(0, 0, -7)}
	}
	return []interview.Interview{
		{
			Title:         "Temporary Lecturer Interview - Marketing",
			Subject:       strPtr("Marketing Management"),
			ScheduledAt:   now.AddDate(0, 0, -7).Truncate(time.Hour),
			Venue:         strPtr("Department Board Room"),
			Status:        interview.InterviewStatusEnded,
			MarkingScheme: interview.DefaultMarkingScheme(),
			Candidates: []interview.Candidate{
				{ID: "C001", Name: "H.M. Perera", Email: "hm.perera@gmail.com", Phone: strPtr("+94 77 111 2233"), Marks: marks(24, 22, 31)},
				{ID: "C002", Name: "A.S. Gunasekara", Email: "as.gunasekara@gmail.com", Marks: marks(18, 20, 25)},
				{ID: "C003", Name: "T.D. Rajapaksha", Email: "td.rajapaksha@gmail.com"},
			},
			CreatedBy: "dilani.wickramaarachchi@kln.ac.lk",
		},
		{
			Title:         "Temporary Lecturer Interview - Operations",
			Subject:       strPtr("Operations Management"),
			ScheduledAt:   now.AddDate(0, 0, 7).Truncate(time.Hour),
			Venue:         strPtr("Department Board Room"),
			Status:        interview.InterviewStatusUpcoming,
			MarkingScheme: interview.DefaultMarkingScheme(),
			Candidates: []interview.Candidate{
				{ID: "C001", Name: "M.K. Bandara", Email: "mk.bandara@gmail.com"},
				{ID: "C002", Name: "P.L. Wijesinghe", Email: "pl.wijesinghe@gmail.com"},
			},
			CreatedBy: "dilani.wickramaarachchi@kln.ac.lk",
		},
	}
}

// ==========================================
// DEFAULT ACCOUNTS
// ==========================================

// GetDefaultAccounts returns one sign-in account per role. Password hashes are
// filled in by SeedDepartment.
func GetDefaultAccounts() []user.User {
	return []user.User{
		{Email: "dilani.wickramaarachchi@kln.ac.lk", Name: "Dr. Dilani Wickramaarachchi", Role: user.RoleHOD},
		{Email: "coordinator@kln.ac.lk", Name: "Dr. Thilini Mahanama", Role: user.RoleCoordinator},
		{Email: "r.fernando@kln.ac.lk", Name: "Dr. R. Fernando", Role: user.RoleMentor, MentorID: strPtr("M002")},
		{Email: "km.silva@kln.ac.lk", Name: "K.M. Silva", Role: user.RoleStaff, StaffID: strPtr("STAFF001")},
		{Email: "rp.fernando@kln.ac.lk", Name: "R.P. Fernando", Role: user.RoleStaff, StaffID: strPtr("STAFF002")},
	}
}

// SeedDepartment loads the default staff, registrations, leave history,
// attendance, pay rates, interviews and accounts into the given repositories.
func SeedDepartment(ctx context.Context, repos Repositories, seedPassword string) error {
	for _, member := range GetDefaultStaff() {
		if _, err := repos.Staff.Create(ctx, member); err != nil {
			return fmt.Errorf("failed to seed staff member %s: %w", member.ID, err)
		}
	}

	for _, jd := range GetDefaultJobDescriptions() {
		if _, err := repos.JobDescriptions.Save(ctx, jd); err != nil {
			return fmt.Errorf("failed to seed job description for %s: %w", jd.StaffID, err)
		}
	}

	for _, req := range GetDefaultRegistrations(time.Now()) {
		if _, err := repos.Registrations.Create(ctx, req); err != nil {
			return fmt.Errorf("failed to seed registration %s: %w", req.ID, err)
		}
	}

	for _, application := range GetDefaultLeaveApplications() {
		if _, err := repos.LeaveApplications.Create(ctx, application); err != nil {
			return fmt.Errorf("failed to seed leave application %s: %w", application.ID, err)
		}
	}

	if repos.Attendance != nil {
		for _, record := range GetDefaultAttendance() {
			if _, err := repos.Attendance.Create(ctx, record); err != nil {
				return fmt.Errorf("failed to seed attendance for %s: %w", record.StaffID, err)
			}
		}
	}

	if repos.PayRates != nil {
		for _, rate := range GetDefaultPayRates() {
			if _, err := repos.PayRates.Save(ctx, rate); err != nil {
				return fmt.Errorf("failed to seed pay rate for %s: %w", rate.StaffID, err)
			}
		}
	}

	if repos.Interviews != nil {
		for _, i := range GetDefaultInterviews(time.Now()) {
			if _, err := repos.Interviews.Create(ctx, i); err != nil {
				return fmt.Errorf("failed to seed interview %q: %w", i.Title, err)
			}
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	hash := string(hashed)

	for _, account := range GetDefaultAccounts() {
		account.PasswordHash = &hash
		if _, err := repos.Users.Create(ctx, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", account.Email, err)
		}
	}

	return nil
}
