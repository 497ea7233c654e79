package staff

import "time"

type JobTaskType string

const (
	JobTaskAcademic       JobTaskType = "academic"
	JobTaskAdministrative JobTaskType = "administrative"
)

func (t JobTaskType) IsValid() bool {
	return t == JobTaskAcademic || t == JobTaskAdministrative
}

type JobTask struct {
	Description string
	Type        JobTaskType
}

// JobDescription lists the duties a coordinator set for one staff member.
// Saving again replaces the task list.
type JobDescription struct {
	StaffID   string
	Tasks     []JobTask
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
