package dashboard

// DashboardResponse is the department overview shown to coordinators and the HOD
type DashboardResponse struct {
	Staff         StaffSummaryResponse        `json:"staff"`
	Registrations RegistrationSummaryResponse `json:"registrations"`
	Leave         LeaveSummaryResponse        `json:"leave"`
	Mentors       []MentorLoadResponse        `json:"mentors"`
	Substitutes   []SubstituteLoadResponse    `json:"substitutes"`
}

type StaffSummaryResponse struct {
	Total                 int      `json:"total"`
	WithMentor            int      `json:"with_mentor"`
	WithoutMentor         int      `json:"without_mentor"`
	MissingJobDescription int      `json:"missing_job_description"`
	UnassignedIDs         []string `json:"unassigned_ids"`
}

type RegistrationSummaryResponse struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type LeaveSummaryResponse struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	// OnLeaveToday counts approved leave covering the current day
	OnLeaveToday int `json:"on_leave_today"`
}

// MentorLoadResponse lists mentors, busiest first
type MentorLoadResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	CurrentAssignments int    `json:"current_assignments"`
}

// SubstituteLoadResponse lists substitutes, busiest first
type SubstituteLoadResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CurrentLoad int    `json:"current_load"`
}
