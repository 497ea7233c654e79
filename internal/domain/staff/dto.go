package staff

import (
	"strings"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
)

type StaffResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             *string  `json:"phone,omitempty"`
	PreferredSubjects []string `json:"preferred_subjects"`
	MentorID          *string  `json:"mentor_id,omitempty"`
	MentorName        *string  `json:"mentor_name,omitempty"`
	HasJobDescription bool     `json:"has_job_description"`
}

func NewStaffResponse(s StaffMember) StaffResponse {
	subjects := s.PreferredSubjects
	if subjects == nil {
		subjects = []string{}
	}
	return StaffResponse{
		ID:                s.ID,
		Name:              s.Name,
		Email:             s.Email,
		Phone:             s.Phone,
		PreferredSubjects: subjects,
		MentorID:          s.MentorID,
		MentorName:        s.MentorName,
		HasJobDescription: s.HasJobDescription,
	}
}

type MentorResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Specializations    []string `json:"specializations"`
	CurrentAssignments int      `json:"current_assignments"`
}

func NewMentorResponse(m Mentor) MentorResponse {
	specs := m.Specializations
	if specs == nil {
		specs = []string{}
	}
	return MentorResponse{
		ID:                 m.ID,
		Name:               m.Name,
		Email:              m.Email,
		Specializations:    specs,
		CurrentAssignments: m.CurrentAssignments,
	}
}

type AssignMentorRequest struct {
	StaffID  string `json:"-"`
	MentorID string `json:"mentor_id"`
}

func (r *AssignMentorRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if validator.IsEmpty(r.MentorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "mentor_id",
			Message: "mentor_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitRegistrationRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	PreferredSubjects []string `json:"preferred_subjects"`
	Password          string   `json:"password"`
	ConfirmPassword   string   `json:"confirm_password"`
}

func (r *SubmitRegistrationRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Phone
	if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid Sri Lankan number, e.g. +94 77 345 6789",
		})
	}

	// Password
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if r.Password != r.ConfirmPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "passwords do not match",
		})
	}

	// Preferred subjects
	if len(r.PreferredSubjects) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "preferred_subjects",
			Message: "at least one preferred subject is required",
		})
	} else if validator.HasBlank(r.PreferredSubjects) {
		errs = append(errs, validator.ValidationError{
			Field:   "preferred_subjects",
			Message: "preferred subjects must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegistrationFilter struct {
	Status *string
}

func (f *RegistrationFilter) Validate() error {
	if f.Status == nil {
		return nil
	}
	if !RegistrationStatus(*f.Status).IsValid() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected",
		}}
	}
	return nil
}

type DecideRegistrationRequest struct {
	RequestID string
	DecidedBy string
}

func (r *DecideRegistrationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if validator.IsEmpty(r.DecidedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "decided_by",
			Message: "decided_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegistrationResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	PreferredSubjects []string   `json:"preferred_subjects"`
	Status            string     `json:"status"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	DecidedBy         *string    `json:"decided_by,omitempty"`
	DecidedAt         *time.Time `json:"decided_at,omitempty"`
	StaffID           *string    `json:"staff_id,omitempty"`
}

func NewRegistrationResponse(r RegistrationRequest) RegistrationResponse {
	subjects := r.PreferredSubjects
	if subjects == nil {
		subjects = []string{}
	}
	return RegistrationResponse{
		ID:                r.ID,
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		PreferredSubjects: subjects,
		Status:            string(r.Status),
		SubmittedAt:       r.SubmittedAt,
		DecidedBy:         r.DecidedBy,
		DecidedAt:         r.DecidedAt,
		StaffID:           r.StaffID,
	}
}

// ==================== JOB DESCRIPTION ====================

type JobTaskRequest struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

type SaveJobDescriptionRequest struct {
	StaffID   string           `json:"-"`
	CreatedBy string           `json:"-"`
	Tasks     []JobTaskRequest `json:"tasks"`
}

// FilledTasks returns the tasks with a non-blank description, trimmed.
func (r *SaveJobDescriptionRequest) FilledTasks() []JobTask {
	tasks := make([]JobTask, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		if validator.IsEmpty(t.Description) {
			continue
		}
		tasks = append(tasks, JobTask{
			Description: strings.TrimSpace(t.Description),
			Type:        JobTaskType(t.Type),
		})
	}
	return tasks
}

func (r *SaveJobDescriptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if validator.IsEmpty(r.CreatedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "created_by",
			Message: "created_by is required",
		})
	}

	tasks := r.FilledTasks()
	if len(tasks) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "tasks",
			Message: "at least one task is required",
		})
	}
	for _, t := range tasks {
		if !t.Type.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "tasks",
				Message: "task type must be academic or administrative",
			})
			break
		}
	}
	for _, t := range tasks {
		if len(t.Description) > 500 {
			errs = append(errs, validator.ValidationError{
				Field:   "tasks",
				Message: "task description must not exceed 500 characters",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type JobTaskResponse struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

type JobDescriptionResponse struct {
	StaffID             string            `json:"staff_id"`
	StaffName           string            `json:"staff_name"`
	AcademicTasks       []JobTaskResponse `json:"academic_tasks"`
	AdministrativeTasks []JobTaskResponse `json:"administrative_tasks"`
	TotalTasks          int               `json:"total_tasks"`
	CreatedBy           string            `json:"created_by"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

func NewJobDescriptionResponse(jd JobDescription, staffName string) JobDescriptionResponse {
	resp := JobDescriptionResponse{
		StaffID:             jd.StaffID,
		StaffName:           staffName,
		AcademicTasks:       []JobTaskResponse{},
		AdministrativeTasks: []JobTaskResponse{},
		TotalTasks:          len(jd.Tasks),
		CreatedBy:           jd.CreatedBy,
		CreatedAt:           jd.CreatedAt,
		UpdatedAt:           jd.UpdatedAt,
	}
	for _, t := range jd.Tasks {
		task := JobTaskResponse{Description: t.Description, Type: string(t.Type)}
		if t.Type == JobTaskAdministrative {
			resp.AdministrativeTasks = append(resp.AdministrativeTasks, task)
		} else {
			resp.AcademicTasks = append(resp.AcademicTasks, task)
		}
	}
	return resp
}
