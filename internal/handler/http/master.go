package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/auth"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/master/site"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/middleware"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/response"
)

type MasterHandler interface {
	CreateSite(w http.ResponseWriter, r *http.Request)
	ListSites(w http.ResponseWriter, r *http.Request)
	SetSiteActive(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	siteService site.SiteService
}

func NewMasterHandler(siteService site.SiteService) MasterHandler {
	return &MasterHandlerImpl{siteService: siteService}
}

// CreateSite implements MasterHandler.
func (h *MasterHandlerImpl) CreateSite(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req site.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateSite decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.siteService.Create(r.Context(), req, actorID)
	if err != nil {
		slog.Error("CreateSite service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Site created", created)
}

// ListSites implements MasterHandler.
func (h *MasterHandlerImpl) ListSites(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	sites, err := h.siteService.List(r.Context(), activeOnly)
	if err != nil {
		slog.Error("ListSites service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, sites)
}

// SetSiteActive implements MasterHandler.
func (h *MasterHandlerImpl) SetSiteActive(w http.ResponseWriter, r *http.Request) {
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

	if err := h.siteService.SetActive(r.Context(), id, active, actorID); err != nil {
		slog.Error("SetSiteActive service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site updated", nil)
}
