package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tscs-kln/tscs-backend-go/internal/domain/attendance"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/auth"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/interview"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/notification"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/payroll"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email, password or role")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "An account with this email already exists")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCoordinatorAccessRequired):
		Forbidden(w, "Coordinator access required")
	case errors.Is(err, user.ErrStaffProfileRequired):
		Forbidden(w, "Only temporary staff can perform this action")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, staff.ErrMentorNotFound):
		NotFound(w, "Mentor not found")
	case errors.Is(err, staff.ErrSubstituteNotFound):
		NotFound(w, "Substitute staff not found")
	case errors.Is(err, staff.ErrRegistrationNotFound):
		NotFound(w, "Registration request not found")
	case errors.Is(err, staff.ErrRegistrationAlreadyProcessed):
		Conflict(w, "Registration request already processed")
	case errors.Is(err, staff.ErrStaffEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, staff.ErrJobDescriptionNotFound):
		NotFound(w, "Job description not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrLeaveApplicationAlreadyProcessed):
		Conflict(w, "Leave application already processed")
	case errors.Is(err, leave.ErrSubstituteIsApplicant):
		BadRequest(w, "Substitute cannot be the applicant", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceAlreadyRecorded):
		Conflict(w, "Attendance already recorded for this session")
	case errors.Is(err, attendance.ErrAttendanceDateInFuture):
		BadRequest(w, "Attendance cannot be recorded for a future date", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryReportNotFound):
		NotFound(w, "Salary report not found")
	case errors.Is(err, payroll.ErrSalaryReportNotPending):
		Conflict(w, "Salary report is not pending approval")
	case errors.Is(err, payroll.ErrSalaryReportExists):
		Conflict(w, "Salary report already exists for this month")
	case errors.Is(err, payroll.ErrNoDraftSalaryReports):
		Conflict(w, "No draft salary reports for this month")

	// Interview domain errors
	case errors.Is(err, interview.ErrInterviewNotFound):
		NotFound(w, "Interview not found")
	case errors.Is(err, interview.ErrCandidateNotFound):
		NotFound(w, "Candidate not found")
	case errors.Is(err, interview.ErrInterviewNotEnded):
		Conflict(w, "Interview has not ended yet")
	case errors.Is(err, interview.ErrMarkingSchemeLocked):
		Conflict(w, "Marking scheme cannot change once candidates are marked")
	case errors.Is(err, interview.ErrShortlistSubmitted):
		Conflict(w, "Shortlist already submitted")
	case errors.Is(err, interview.ErrShortlistNotPending):
		Conflict(w, "No shortlist awaiting approval")
	case errors.Is(err, interview.ErrCandidateNotMarked):
		BadRequest(w, "Shortlisted candidates must be marked", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
