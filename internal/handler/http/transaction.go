package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/auth"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/transaction"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/middleware"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/response"
)

type TransactionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TransactionHandlerImpl struct {
	transactionService transaction.TransactionService
}

func NewTransactionHandler(transactionService transaction.TransactionService) TransactionHandler {
	return &TransactionHandlerImpl{transactionService: transactionService}
}

// Create implements TransactionHandler.
func (h *TransactionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req transaction.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTransaction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.transactionService.Create(r.Context(), req, actorID)
	if err != nil {
		slog.Error("CreateTransaction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction created", created)
}

// GetByID implements TransactionHandler.
func (h *TransactionHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.transactionService.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("GetTransaction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, t)
}

// List implements TransactionHandler.
func (h *TransactionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := transaction.TransactionFilter{}

	query := r.URL.Query()
	if month := query.Get("month"); month != "" {
		filter.Month = &month
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.transactionService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListTransactions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	totalPages := int(result.TotalCount) / result.Limit
	if int(result.TotalCount)%result.Limit > 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

// UpdateStatus implements TransactionHandler.
func (h *TransactionHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req transaction.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTransactionStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.transactionService.UpdateStatus(r.Context(), req, actorID); err != nil {
		slog.Error("UpdateTransactionStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Status updated", nil)
}

// Delete implements TransactionHandler.
func (h *TransactionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.transactionService.Delete(r.Context(), id, actorID); err != nil {
		slog.Error("DeleteTransaction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction deleted", nil)
}
