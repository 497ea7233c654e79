package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

type RegistrationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type RegistrationHandlerImpl struct {
	staffService staff.StaffService
}

func NewRegistrationHandler(staffService staff.StaffService) RegistrationHandler {
	return &RegistrationHandlerImpl{
		staffService: staffService,
	}
}

// Submit implements RegistrationHandler.
func (h *RegistrationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req staff.SubmitRegistrationRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitRegistration decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	registration, err := h.staffService.SubmitRegistration(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Registration submitted for review", registration)
}

// List implements RegistrationHandler.
func (h *RegistrationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := staff.RegistrationFilter{Status: statusParam(r)}

	registrations, err := h.staffService.ListRegistrations(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, registrations, filter.Status)
}

// Approve implements RegistrationHandler.
func (h *RegistrationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, err := decideRegistrationRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	registration, err := h.staffService.ApproveRegistration(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Registration approved", registration)
}

// Reject implements RegistrationHandler.
func (h *RegistrationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := decideRegistrationRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	registration, err := h.staffService.RejectRegistration(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Registration rejected", registration)
}

func decideRegistrationRequest(r *http.Request) (staff.DecideRegistrationRequest, error) {
	userID, err := claimString(r, "user_id")
	if err != nil {
		return staff.DecideRegistrationRequest{}, err
	}
	return staff.DecideRegistrationRequest{
		RequestID: chi.URLParam(r, "id"),
		DecidedBy: userID,
	}, nil
}
