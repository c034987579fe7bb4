package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hrstack/hrms-backend-go/internal/domain/dashboard"
	"github.com/hrstack/hrms-backend-go/internal/handler/http/middleware"
	"github.com/hrstack/hrms-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	AttendanceTrends(w http.ResponseWriter, r *http.Request)
	EmployeeMetrics(w http.ResponseWriter, r *http.Request)
	PayrollAnalytics(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *DashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		slog.Error("Dashboard overview service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, overview)
}

func (h *DashboardHandlerImpl) AttendanceTrends(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days == 0 {
		days = 30
	}

	trends, err := h.dashboardService.AttendanceTrends(r.Context(), days)
	if err != nil {
		slog.Error("Dashboard attendance trends service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, trends)
}

func (h *DashboardHandlerImpl) EmployeeMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, _ := strconv.Atoi(q.Get("month"))
	year, _ := strconv.Atoi(q.Get("year"))

	metrics, err := h.dashboardService.EmployeeMetrics(r.Context(), month, year)
	if err != nil {
		slog.Error("Dashboard employee metrics service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, metrics)
}

func (h *DashboardHandlerImpl) PayrollAnalytics(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))

	analytics, err := h.dashboardService.PayrollAnalytics(r.Context(), months)
	if err != nil {
		slog.Error("Dashboard payroll analytics service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, analytics)
}

func (h *DashboardHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.BadRequest(w, "No employee record linked to this account", nil)
		return
	}

	summary, err := h.dashboardService.MySummary(r.Context(), employeeID)
	if err != nil {
		slog.Error("Dashboard my-summary service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
