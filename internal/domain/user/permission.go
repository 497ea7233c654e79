package user

type Permission string

const (
	// Staff Management
	PermissionStaffViewAll       Permission = "staff.view_all"
	PermissionMentorViewAll      Permission = "mentor.view_all"
	PermissionMentorAssign       Permission = "mentor.assign"
	PermissionRegistrationView   Permission = "registration.view"
	PermissionRegistrationDecide Permission = "registration.decide"

	PermissionJobDescriptionManage Permission = "job_description.manage"

	// Leave Management
	PermissionLeaveApply   Permission = "leave.apply"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Attendance & Salary
	PermissionAttendanceRecord  Permission = "attendance.record"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionSalaryPrepare     Permission = "salary.prepare"
	PermissionSalaryApprove     Permission = "salary.approve"
	PermissionSalaryViewAll     Permission = "salary.view_all"
	PermissionSalaryViewOwn     Permission = "salary.view_own"

	// Interviews
	PermissionInterviewManage    Permission = "interview.manage"
	PermissionInterviewView      Permission = "interview.view"
	PermissionInterviewScheme    Permission = "interview.scheme"
	PermissionInterviewMark      Permission = "interview.mark"
	PermissionInterviewShortlist Permission = "interview.shortlist"

	// Overview
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleHOD: {
		PermissionStaffViewAll,
		PermissionMentorViewAll,
		PermissionMentorAssign,
		PermissionRegistrationView,
		PermissionRegistrationDecide,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewAll,
		PermissionSalaryApprove,
		PermissionSalaryViewAll,
		PermissionInterviewManage,
		PermissionInterviewView,
		PermissionDashboardView,
	},
	RoleCoordinator: {
		PermissionStaffViewAll,
		PermissionMentorViewAll,
		PermissionMentorAssign,
		PermissionRegistrationView,
		PermissionRegistrationDecide,
		PermissionJobDescriptionManage,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceRecord,
		PermissionAttendanceViewAll,
		PermissionSalaryPrepare,
		PermissionSalaryViewAll,
		PermissionInterviewView,
		PermissionInterviewScheme,
		PermissionInterviewMark,
		PermissionInterviewShortlist,
		PermissionDashboardView,
	},
	RoleMentor: {
		// Mentor sees the staff they may supervise
		PermissionStaffViewAll,
		PermissionInterviewView,
		PermissionInterviewMark,
	},
	RoleStaff: {
		PermissionLeaveApply,
		PermissionLeaveViewOwn,
		PermissionAttendanceViewOwn,
		PermissionSalaryViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
