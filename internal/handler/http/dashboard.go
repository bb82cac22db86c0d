package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/activitylog"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/dashboard"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	MonthlyOverview(w http.ResponseWriter, r *http.Request)
	ActivityLog(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService   dashboard.DashboardService
	activityLogService activitylog.ActivityLogService
}

func NewDashboardHandler(
	dashboardService dashboard.DashboardService,
	activityLogService activitylog.ActivityLogService,
) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService:   dashboardService,
		activityLogService: activityLogService,
	}
}

// MonthlyOverview implements DashboardHandler. An omitted month defaults
// to the current one.
func (h *DashboardHandlerImpl) MonthlyOverview(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	overview, err := h.dashboardService.MonthlyOverview(r.Context(), month)
	if err != nil {
		slog.Error("MonthlyOverview service error", "error", err, "month", month)
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// ActivityLog implements DashboardHandler.
func (h *DashboardHandlerImpl) ActivityLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.activityLogService.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("ActivityLog service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
