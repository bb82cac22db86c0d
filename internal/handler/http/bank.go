package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/auth"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/bank"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/middleware"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/response"
)

type BankHandler interface {
	CreateAccount(w http.ResponseWriter, r *http.Request)
	ListAccounts(w http.ResponseWriter, r *http.Request)
	SetAccountActive(w http.ResponseWriter, r *http.Request)
	CreateCard(w http.ResponseWriter, r *http.Request)
	GetCard(w http.ResponseWriter, r *http.Request)
	ListCards(w http.ResponseWriter, r *http.Request)
	AssignCard(w http.ResponseWriter, r *http.Request)
	UnassignCard(w http.ResponseWriter, r *http.Request)
	ResetDailyLimits(w http.ResponseWriter, r *http.Request)
}

type BankHandlerImpl struct {
	bankService bank.BankService
}

func NewBankHandler(bankService bank.BankService) BankHandler {
	return &BankHandlerImpl{bankService: bankService}
}

// CreateAccount implements BankHandler.
func (h *BankHandlerImpl) CreateAccount(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req bank.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAccount decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.bankService.CreateAccount(r.Context(), req, actorID)
	if err != nil {
		slog.Error("CreateAccount service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Account created", created)
}

// ListAccounts implements BankHandler.
func (h *BankHandlerImpl) ListAccounts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	accounts, err := h.bankService.ListAccounts(r.Context(), activeOnly)
	if err != nil {
		slog.Error("ListAccounts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, accounts)
}

// SetAccountActive implements BankHandler.
func (h *BankHandlerImpl) SetAccountActive(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	id := chi.URLParam(r, "id")
	active, err := strconv.ParseBool(r.URL.Query().Get("active"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'active' must be true or false", nil)
		return
	}

	if err := h.bankService.SetAccountActive(r.Context(), id, active, actorID); err != nil {
		slog.Error("SetAccountActive service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account updated", nil)
}

// CreateCard implements BankHandler.
func (h *BankHandlerImpl) CreateCard(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req bank.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCard decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.bankService.CreateCard(r.Context(), req, actorID)
	if err != nil {
		slog.Error("CreateCard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Card created", created)
}

// GetCard implements BankHandler.
func (h *BankHandlerImpl) GetCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := h.bankService.GetCard(r.Context(), id)
	if err != nil {
		slog.Error("GetCard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, card)
}

// ListCards implements BankHandler.
func (h *BankHandlerImpl) ListCards(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	cards, err := h.bankService.ListCards(r.Context(), activeOnly)
	if err != nil {
		slog.Error("ListCards service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, cards)
}

// AssignCard implements BankHandler.
func (h *BankHandlerImpl) AssignCard(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req bank.AssignCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignCard decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CardID = chi.URLParam(r, "id")

	if err := h.bankService.AssignCard(r.Context(), req, actorID); err != nil {
		slog.Error("AssignCard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Card assigned", nil)
}

// UnassignCard implements BankHandler.
func (h *BankHandlerImpl) UnassignCard(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.bankService.UnassignCard(r.Context(), id, actorID); err != nil {
		slog.Error("UnassignCard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Card unassigned", nil)
}

// ResetDailyLimits implements BankHandler.
func (h *BankHandlerImpl) ResetDailyLimits(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.bankService.ResetDailyLimits(r.Context(), actorID)
	if err != nil {
		slog.Error("ResetDailyLimits service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily limits reset", result)
}
