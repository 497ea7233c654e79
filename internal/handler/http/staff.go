package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

type StaffHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMentors(w http.ResponseWriter, r *http.Request)
	SuggestMentors(w http.ResponseWriter, r *http.Request)
	AssignMentor(w http.ResponseWriter, r *http.Request)
	SaveJobDescription(w http.ResponseWriter, r *http.Request)
	GetJobDescription(w http.ResponseWriter, r *http.Request)
	GetMyJobDescription(w http.ResponseWriter, r *http.Request)
}

type StaffHandlerImpl struct {
	staffService staff.StaffService
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &StaffHandlerImpl{
		staffService: staffService,
	}
}

// List implements StaffHandler.
func (s *StaffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	members, err := s.staffService.ListStaff(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, members, nil)
}

// Get implements StaffHandler.
func (s *StaffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	member, err := s.staffService.GetStaff(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, member)
}

// ListMentors implements StaffHandler.
func (s *StaffHandlerImpl) ListMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := s.staffService.ListMentors(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, mentors, nil)
}

// SuggestMentors implements StaffHandler.
func (s *StaffHandlerImpl) SuggestMentors(w http.ResponseWriter, r *http.Request) {
	suggestion, err := s.staffService.SuggestMentors(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, suggestion)
}

// AssignMentor implements StaffHandler.
func (s *StaffHandlerImpl) AssignMentor(w http.ResponseWriter, r *http.Request) {
	var req staff.AssignMentorRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignMentor decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StaffID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	member, err := s.staffService.AssignMentor(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Mentor assigned successfully", member)
}

// SaveJobDescription implements StaffHandler.
func (s *StaffHandlerImpl) SaveJobDescription(w http.ResponseWriter, r *http.Request) {
	var req staff.SaveJobDescriptionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveJobDescription decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StaffID = chi.URLParam(r, "id")

	createdBy, err := claimString(r, "email")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.CreatedBy = createdBy

	jd, err := s.staffService.SaveJobDescription(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job description saved", jd)
}

// GetJobDescription implements StaffHandler.
func (s *StaffHandlerImpl) GetJobDescription(w http.ResponseWriter, r *http.Request) {
	s.writeJobDescription(w, r, chi.URLParam(r, "id"))
}

// GetMyJobDescription implements StaffHandler.
func (s *StaffHandlerImpl) GetMyJobDescription(w http.ResponseWriter, r *http.Request) {
	staffID, err := claimString(r, "staff_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	s.writeJobDescription(w, r, staffID)
}

func (s *StaffHandlerImpl) writeJobDescription(w http.ResponseWriter, r *http.Request, staffID string) {
	jd, err := s.staffService.GetJobDescription(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, jd)
}
