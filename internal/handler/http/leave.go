package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	SuggestSubstitutes(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// SuggestSubstitutes implements LeaveHandler.
func (l *LeaveHandlerImpl) SuggestSubstitutes(w http.ResponseWriter, r *http.Request) {
	staffID, err := claimString(r, "staff_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	suggestion, err := l.leaveService.SuggestSubstitutes(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, suggestion)
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	staffID, err := claimString(r, "staff_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.StaffID = staffID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	application, err := l.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", application)
}

// ListMine implements LeaveHandler.
func (l *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	staffID, err := claimString(r, "staff_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	applications, err := l.leaveService.ListMine(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, applications, nil)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveApplicationFilter{Status: statusParam(r)}

	applications, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, applications, filter.Status)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, err := decideLeaveRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	application, err := l.leaveService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application approved", application)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := decideLeaveRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	application, err := l.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application rejected", application)
}

func decideLeaveRequest(r *http.Request) (leave.DecideLeaveRequest, error) {
	userID, err := claimString(r, "user_id")
	if err != nil {
		return leave.DecideLeaveRequest{}, err
	}
	return leave.DecideLeaveRequest{
		ApplicationID: chi.URLParam(r, "id"),
		DecidedBy:     userID,
	}, nil
}
