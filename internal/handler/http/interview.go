package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/interview"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

type InterviewHandler interface {
	Schedule(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SetMarkingScheme(w http.ResponseWriter, r *http.Request)
	AssignMarks(w http.ResponseWriter, r *http.Request)
	SubmitShortlist(w http.ResponseWriter, r *http.Request)
	ApproveShortlist(w http.ResponseWriter, r *http.Request)
	RejectShortlist(w http.ResponseWriter, r *http.Request)
}

type InterviewHandlerImpl struct {
	interviewService interview.InterviewService
}

func NewInterviewHandler(interviewService interview.InterviewService) InterviewHandler {
	return &InterviewHandlerImpl{
		interviewService: interviewService,
	}
}

// Schedule implements InterviewHandler.
func (h *InterviewHandlerImpl) Schedule(w http.ResponseWriter, r *http.Request) {
	var req interview.ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ScheduleInterview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := claimString(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.CreatedBy = userID

	scheduled, err := h.interviewService.Schedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Interview scheduled", scheduled)
}

// List implements InterviewHandler.
func (h *InterviewHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := interview.InterviewFilter{Status: statusParam(r)}

	interviews, err := h.interviewService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, interviews, filter.Status)
}

// Get implements InterviewHandler.
func (h *InterviewHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.interviewService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetMarkingScheme implements InterviewHandler.
func (h *InterviewHandlerImpl) SetMarkingScheme(w http.ResponseWriter, r *http.Request) {
	var req interview.SetMarkingSchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetMarkingScheme decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.InterviewID = chi.URLParam(r, "id")

	result, err := h.interviewService.SetMarkingScheme(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Marking scheme saved", result)
}

// AssignMarks implements InterviewHandler.
func (h *InterviewHandlerImpl) AssignMarks(w http.ResponseWriter, r *http.Request) {
	var req interview.AssignMarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignMarks decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := claimString(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.InterviewID = chi.URLParam(r, "id")
	req.CandidateID = chi.URLParam(r, "candidateID")
	req.MarkedBy = userID

	result, err := h.interviewService.AssignMarks(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Marks saved", result)
}

// SubmitShortlist implements InterviewHandler.
func (h *InterviewHandlerImpl) SubmitShortlist(w http.ResponseWriter, r *http.Request) {
	var req interview.SubmitShortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitShortlist decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := claimString(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.InterviewID = chi.URLParam(r, "id")
	req.SubmittedBy = userID

	result, err := h.interviewService.SubmitShortlist(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shortlist sent for approval", result)
}

// ApproveShortlist implements InterviewHandler.
func (h *InterviewHandlerImpl) ApproveShortlist(w http.ResponseWriter, r *http.Request) {
	req, ok := decideShortlistRequest(w, r)
	if !ok {
		return
	}

	result, err := h.interviewService.ApproveShortlist(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shortlist approved", result)
}

// RejectShortlist implements InterviewHandler.
func (h *InterviewHandlerImpl) RejectShortlist(w http.ResponseWriter, r *http.Request) {
	req, ok := decideShortlistRequest(w, r)
	if !ok {
		return
	}

	result, err := h.interviewService.RejectShortlist(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shortlist rejected", result)
}

// decideShortlistRequest reads the optional remarks body. It writes the
// error response itself and reports false on failure.
func decideShortlistRequest(w http.ResponseWriter, r *http.Request) (interview.DecideShortlistRequest, bool) {
	var req interview.DecideShortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("DecideShortlist decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}

	userID, err := claimString(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return req, false
	}
	req.InterviewID = chi.URLParam(r, "id")
	req.DecidedBy = userID
	return req, true
}
