package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/payroll"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	GetPayRate(w http.ResponseWriter, r *http.Request)
	SetPayRate(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	SendToHOD(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewSalaryHandler(payrollService payroll.PayrollService) SalaryHandler {
	return &SalaryHandlerImpl{
		payrollService: payrollService,
	}
}

// GetPayRate implements SalaryHandler.
func (h *SalaryHandlerImpl) GetPayRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.payrollService.GetPayRate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rate)
}

// SetPayRate implements SalaryHandler.
func (h *SalaryHandlerImpl) SetPayRate(w http.ResponseWriter, r *http.Request) {
	var req payroll.SetPayRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetPayRate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := claimString(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.StaffID = chi.URLParam(r, "id")
	req.UpdatedBy = userID

	rate, err := h.payrollService.SetPayRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay rate saved", rate)
}

// Generate implements SalaryHandler.
func (h *SalaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateSalaryReportsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateSalaryReports decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := claimString(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.PreparedBy = userID

	result, err := h.payrollService.GenerateSalaryReports(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary reports generated", result)
}

// SendToHOD implements SalaryHandler.
func (h *SalaryHandlerImpl) SendToHOD(w http.ResponseWriter, r *http.Request) {
	var req payroll.SendSalaryReportsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SendSalaryReports decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := claimString(r, "user_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.SentBy = userID

	result, err := h.payrollService.SendToHOD(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary reports sent for approval", result)
}

// List implements SalaryHandler.
func (h *SalaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.SalaryReportFilter{Status: statusParam(r)}
	if month := r.URL.Query().Get("month"); month != "" {
		filter.Month = &month
	}

	reports, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, reports, filter.Status)
}

// ListMine implements SalaryHandler.
func (h *SalaryHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	staffID, err := claimString(r, "staff_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reports, err := h.payrollService.ListMine(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, reports, nil)
}

// Approve implements SalaryHandler.
func (h *SalaryHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, err := decideSalaryRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.payrollService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary report approved", report)
}

// Reject implements SalaryHandler.
func (h *SalaryHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := decideSalaryRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.payrollService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary report rejected", report)
}

func decideSalaryRequest(r *http.Request) (payroll.DecideSalaryReportRequest, error) {
	userID, err := claimString(r, "user_id")
	if err != nil {
		return payroll.DecideSalaryReportRequest{}, err
	}
	return payroll.DecideSalaryReportRequest{
		ReportID:  chi.URLParam(r, "id"),
		DecidedBy: userID,
	}, nil
}
