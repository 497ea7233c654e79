package interview

import (
	"fmt"
	"strings"
	"time"

	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
)

// ==================== SCHEDULING ====================

type CandidateInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

type ScheduleInterviewRequest struct {
	Title       string           `json:"title"`
	Subject     *string          `json:"subject"`
	ScheduledAt string           `json:"scheduled_at"`
	Venue       *string          `json:"venue"`
	Candidates  []CandidateInput `json:"candidates"`
	CreatedBy   string           `json:"-"`

	// Parsed by Validate
	scheduledAt time.Time
}

func (r *ScheduleInterviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 200 characters",
		})
	}

	if validator.IsEmpty(r.ScheduledAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_at",
			Message: "scheduled_at is required",
		})
	} else if at, err := time.Parse(time.RFC3339, r.ScheduledAt); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_at",
			Message: "scheduled_at must be an RFC 3339 timestamp",
		})
	} else {
		r.scheduledAt = at
	}

	if len(r.Candidates) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "candidates",
			Message: "at least one candidate is required",
		})
	}
	seen := make(map[string]bool, len(r.Candidates))
	for i, c := range r.Candidates {
		field := fmt.Sprintf("candidates[%d]", i)
		if validator.IsEmpty(c.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".name",
				Message: "name is required",
			})
		}
		email := strings.ToLower(strings.TrimSpace(c.Email))
		switch {
		case !validator.IsValidEmail(email):
			errs = append(errs, validator.ValidationError{
				Field:   field + ".email",
				Message: "email must be a valid email address",
			})
		case seen[email]:
			errs = append(errs, validator.ValidationError{
				Field:   field + ".email",
				Message: "email is listed more than once",
			})
		}
		seen[email] = true
		if c.Phone != nil && !validator.IsValidPhoneNumber(*c.Phone) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".phone",
				Message: "phone must be a valid Sri Lankan phone number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Time returns the parsed start time. Only valid after Validate succeeds.
func (r *ScheduleInterviewRequest) Time() time.Time {
	return r.scheduledAt
}

type InterviewFilter struct {
	Status *string
}

func (f *InterviewFilter) Validate() error {
	if f.Status == nil {
		return nil
	}
	if !InterviewStatus(*f.Status).IsValid() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of upcoming, ended",
		}}
	}
	return nil
}

// ==================== MARKING ====================

type CriterionInput struct {
	Name     string `json:"name"`
	MaxMarks int    `json:"max_marks"`
}

type SetMarkingSchemeRequest struct {
	InterviewID string           `json:"-"`
	Criteria    []CriterionInput `json:"criteria"`
}

func (r *SetMarkingSchemeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.InterviewID) {
		errs = append(errs, validator.ValidationError{
			Field:   "interview_id",
			Message: "interview_id is required",
		})
	}
	if len(r.Criteria) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "criteria",
			Message: "at least one criterion is required",
		})
	}
	seen := make(map[string]bool, len(r.Criteria))
	for i, c := range r.Criteria {
		field := fmt.Sprintf("criteria[%d]", i)
		name := strings.ToLower(strings.TrimSpace(c.Name))
		switch {
		case name == "":
			errs = append(errs, validator.ValidationError{
				Field:   field + ".name",
				Message: "name is required",
			})
		case seen[name]:
			errs = append(errs, validator.ValidationError{
				Field:   field + ".name",
				Message: "criterion names must be unique",
			})
		}
		seen[name] = true
		if c.MaxMarks <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".max_marks",
				Message: "max_marks must be greater than 0",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Scheme returns the trimmed criteria.
func (r *SetMarkingSchemeRequest) Scheme() []Criterion {
	scheme := make([]Criterion, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		scheme = append(scheme, Criterion{Name: strings.TrimSpace(c.Name), MaxMarks: c.MaxMarks})
	}
	return scheme
}

type AssignMarksRequest struct {
	InterviewID string  `json:"-"`
	CandidateID string  `json:"-"`
	MarkedBy    string  `json:"-"`
	Scores      []int   `json:"scores"`
	Comments    *string `json:"comments"`
}

func (r *AssignMarksRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.InterviewID) {
		errs = append(errs, validator.ValidationError{
			Field:   "interview_id",
			Message: "interview_id is required",
		})
	}
	if validator.IsEmpty(r.CandidateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "candidate_id",
			Message: "candidate_id is required",
		})
	}
	if len(r.Scores) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "scores",
			Message: "scores are required",
		})
	}
	if r.Comments != nil && len(*r.Comments) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comments",
			Message: "comments must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckAgainst validates the scores against the marking scheme.
func (r *AssignMarksRequest) CheckAgainst(scheme []Criterion) error {
	if len(r.Scores) != len(scheme) {
		return validator.ValidationErrors{{
			Field:   "scores",
			Message: fmt.Sprintf("expected %d scores, one per criterion", len(scheme)),
		}}
	}
	var errs validator.ValidationErrors
	for i, score := range r.Scores {
		if score < 0 || score > scheme[i].MaxMarks {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("scores[%d]", i),
				Message: fmt.Sprintf("%s must be between 0 and %d", scheme[i].Name, scheme[i].MaxMarks),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ==================== SHORTLIST ====================

type SubmitShortlistRequest struct {
	InterviewID  string   `json:"-"`
	SubmittedBy  string   `json:"-"`
	CandidateIDs []string `json:"candidate_ids"`
}

func (r *SubmitShortlistRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.InterviewID) {
		errs = append(errs, validator.ValidationError{
			Field:   "interview_id",
			Message: "interview_id is required",
		})
	}
	if len(r.CandidateIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "candidate_ids",
			Message: "at least one candidate must be shortlisted",
		})
	} else if validator.HasBlank(r.CandidateIDs) {
		errs = append(errs, validator.ValidationError{
			Field:   "candidate_ids",
			Message: "candidate ids must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideShortlistRequest struct {
	InterviewID string  `json:"-"`
	DecidedBy   string  `json:"-"`
	Remarks     *string `json:"remarks"`
}

func (r *DecideShortlistRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.InterviewID) {
		errs = append(errs, validator.ValidationError{
			Field:   "interview_id",
			Message: "interview_id is required",
		})
	}
	if validator.IsEmpty(r.DecidedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "decided_by",
			Message: "decided_by is required",
		})
	}
	if r.Remarks != nil && len(*r.Remarks) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ==================== RESPONSES ====================

type CriterionResponse struct {
	Name     string `json:"name"`
	MaxMarks int    `json:"max_marks"`
}

type MarksResponse struct {
	Scores   []int     `json:"scores"`
	Total    int       `json:"total"`
	Comments *string   `json:"comments,omitempty"`
	MarkedBy string    `json:"marked_by"`
	MarkedAt time.Time `json:"marked_at"`
}

type CandidateResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       *string        `json:"phone,omitempty"`
	Marks       *MarksResponse `json:"marks,omitempty"`
	Shortlisted bool           `json:"shortlisted"`
}

type ResultsResponse struct {
	Marked       int     `json:"marked"`
	Unmarked     int     `json:"unmarked"`
	AverageTotal float64 `json:"average_total"`
	HighestTotal int     `json:"highest_total"`
	PassMark     int     `json:"pass_mark"`
	Passed       int     `json:"passed"`
}

type ShortlistResponse struct {
	CandidateIDs []string   `json:"candidate_ids"`
	Status       string     `json:"status"`
	SubmittedBy  string     `json:"submitted_by"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	DecidedBy    *string    `json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	Remarks      *string    `json:"remarks,omitempty"`
}

type InterviewResponse struct {
	ID            string              `json:"id"`
	Number        int                 `json:"number"`
	Label         string              `json:"label"`
	Title         string              `json:"title"`
	Subject       *string             `json:"subject,omitempty"`
	ScheduledAt   time.Time           `json:"scheduled_at"`
	Venue         *string             `json:"venue,omitempty"`
	Status        string              `json:"status"`
	MarkingScheme []CriterionResponse `json:"marking_scheme"`
	TotalMarks    int                 `json:"total_marks"`
	Candidates    []CandidateResponse `json:"candidates"`
	Results       ResultsResponse     `json:"results"`
	Shortlist     *ShortlistResponse  `json:"shortlist,omitempty"`
	CreatedBy     string              `json:"created_by"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewInterviewResponse lists candidates ranked by total marks.
func NewInterviewResponse(i Interview, now time.Time) InterviewResponse {
	scheme := make([]CriterionResponse, 0, len(i.MarkingScheme))
	for _, c := range i.MarkingScheme {
		scheme = append(scheme, CriterionResponse{Name: c.Name, MaxMarks: c.MaxMarks})
	}

	shortlisted := make(map[string]bool)
	var shortlist *ShortlistResponse
	if i.Shortlist != nil {
		for _, id := range i.Shortlist.CandidateIDs {
			shortlisted[id] = true
		}
		shortlist = &ShortlistResponse{
			CandidateIDs: i.Shortlist.CandidateIDs,
			Status:       string(i.Shortlist.Status),
			SubmittedBy:  i.Shortlist.SubmittedBy,
			SubmittedAt:  i.Shortlist.SubmittedAt,
			DecidedBy:    i.Shortlist.DecidedBy,
			DecidedAt:    i.Shortlist.DecidedAt,
			Remarks:      i.Shortlist.Remarks,
		}
	}

	ranked := i.RankedCandidates()
	candidates := make([]CandidateResponse, 0, len(ranked))
	for _, c := range ranked {
		resp := CandidateResponse{
			ID:          c.ID,
			Name:        c.Name,
			Email:       c.Email,
			Phone:       c.Phone,
			Shortlisted: shortlisted[c.ID],
		}
		if c.Marks != nil {
			resp.Marks = &MarksResponse{
				Scores:   c.Marks.Scores,
				Total:    c.Marks.Total,
				Comments: c.Marks.Comments,
				MarkedBy: c.Marks.MarkedBy,
				MarkedAt: c.Marks.MarkedAt,
			}
		}
		candidates = append(candidates, resp)
	}

	results := i.Results()
	return InterviewResponse{
		ID:            i.ID,
		Number:        i.Number,
		Label:         fmt.Sprintf("Interview #%d", i.Number),
		Title:         i.Title,
		Subject:       i.Subject,
		ScheduledAt:   i.ScheduledAt,
		Venue:         i.Venue,
		Status:        string(i.StatusAt(now)),
		MarkingScheme: scheme,
		TotalMarks:    i.TotalMarks(),
		Candidates:    candidates,
		Results: ResultsResponse{
			Marked:       results.Marked,
			Unmarked:     results.Unmarked,
			AverageTotal: results.AverageTotal,
			HighestTotal: results.HighestTotal,
			PassMark:     results.PassMark,
			Passed:       results.Passed,
		},
		Shortlist: shortlist,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
	}
}
