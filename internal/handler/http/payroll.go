package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/auth"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/payroll"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/middleware"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	ListCalculations(w http.ResponseWriter, r *http.Request)
	GetCalculation(w http.ResponseWriter, r *http.Request)
	ListSalaryRecords(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Calculate runs the payroll aggregation for the requested month. Each run
// appends a new calculation; history is never overwritten.
func (h *PayrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CalculatePayroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("CalculatePayroll validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	summary, err := h.payrollService.Calculate(r.Context(), req.Month, actorID)
	if err != nil {
		slog.Error("CalculatePayroll service error", "error", err, "month", req.Month)
		response.HandleError(w, err)
		return
	}

	slog.Info("Payroll calculated", "month", req.Month, "employees", summary.EmployeeCount)
	response.Created(w, "Payroll calculated", summary)
}

// ListCalculations implements PayrollHandler.
func (h *PayrollHandlerImpl) ListCalculations(w http.ResponseWriter, r *http.Request) {
	calculations, err := h.payrollService.ListCalculations(r.Context())
	if err != nil {
		slog.Error("ListCalculations service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, calculations)
}

// GetCalculation implements PayrollHandler.
func (h *PayrollHandlerImpl) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	calculation, err := h.payrollService.GetCalculation(r.Context(), id)
	if err != nil {
		slog.Error("GetCalculation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, calculation)
}

// ListSalaryRecords implements PayrollHandler.
func (h *PayrollHandlerImpl) ListSalaryRecords(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	records, err := h.payrollService.ListSalaryRecords(r.Context(), month)
	if err != nil {
		slog.Error("ListSalaryRecords service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// MarkPaid implements PayrollHandler.
func (h *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req payroll.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkPaid decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("MarkPaid validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	if err := h.payrollService.MarkPaid(r.Context(), req, actorID); err != nil {
		slog.Error("MarkPaid service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary records marked as paid", nil)
}
