package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/attendance"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	ListForStaff(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	MonthlySummary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Record implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := claimString(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.StaffID = chi.URLParam(r, "id")
	req.RecordedBy = userID

	record, err := a.attendanceService.RecordAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", record)
}

// ListForStaff implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListForStaff(w http.ResponseWriter, r *http.Request) {
	result, err := a.attendanceService.ListStaffAttendance(r.Context(), chi.URLParam(r, "id"), monthFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	staffID, err := claimString(r, "staff_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.attendanceService.ListStaffAttendance(r.Context(), staffID, monthFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlySummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	result, err := a.attendanceService.MonthlySummary(r.Context(), monthFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func monthFilter(r *http.Request) attendance.MonthFilter {
	return attendance.MonthFilter{Month: r.URL.Query().Get("month")}
}
