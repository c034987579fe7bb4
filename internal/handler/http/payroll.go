package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
	"github.com/hrstack/hrms-backend-go/internal/domain/user"
	"github.com/hrstack/hrms-backend-go/internal/handler/http/middleware"
	"github.com/hrstack/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
	SummaryStats(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func (h *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), &req)
	if err != nil {
		slog.Error("Generate payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	message := fmt.Sprintf("Generated %d payroll records (%d skipped)",
		len(result.Generated), len(result.Errors))
	response.Created(w, message, result)
}

func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := payroll.PayrollFilter{}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("employeeId"); v != "" {
		filter.EmployeeID = &v
	}
	if v, err := strconv.Atoi(q.Get("month")); err == nil && v >= 1 && v <= 12 {
		filter.Month = &v
	}
	if v, err := strconv.Atoi(q.Get("year")); err == nil && v > 0 {
		filter.Year = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	// Regular employees only see their own payslips.
	if role, _ := middleware.Role(r); user.Role(role) == user.RoleEmployee {
		own, ok := middleware.EmployeeID(r)
		if !ok {
			response.HandleError(w, employee.ErrAccessDenied)
			return
		}
		filter.EmployeeID = &own
	}

	records, total, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	items := make([]payroll.PayrollResponse, 0, len(records))
	for _, p := range records {
		items = append(items, payroll.ToResponse(p))
	}
	response.SuccessWithPagination(w, items, response.NewPagination(filter.Page, filter.Limit, total))
}

func (h *PayrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadAuthorized(w, r)
	if !ok {
		return
	}
	response.Success(w, payroll.ToResponse(*p))
}

func (h *PayrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	var req payroll.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	p, err := h.payrollService.UpdateStatus(r.Context(), userID, &req)
	if err != nil {
		slog.Error("UpdateStatus payroll service error", "error", err, "payroll_id", req.ID)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll status updated", payroll.ToResponse(*p))
}

func (h *PayrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadAuthorized(w, r)
	if !ok {
		return
	}

	data, fileName, err := h.payrollService.Payslip(r.Context(), p.ID)
	if err != nil {
		slog.Error("Payslip service error", "error", err, "payroll_id", p.ID)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (h *PayrollHandlerImpl) SummaryStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	now := time.Now()
	month, _ := strconv.Atoi(q.Get("month"))
	if month == 0 {
		month = int(now.Month())
	}
	year, _ := strconv.Atoi(q.Get("year"))
	if year == 0 {
		year = now.Year()
	}

	stats, err := h.payrollService.SummaryStats(r.Context(), month, year)
	if err != nil {
		slog.Error("Payroll summary stats service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// loadAuthorized fetches the record and enforces that regular employees
// only reach their own payroll.
func (h *PayrollHandlerImpl) loadAuthorized(w http.ResponseWriter, r *http.Request) (*payroll.Payroll, bool) {
	id := chi.URLParam(r, "id")

	p, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return nil, false
	}

	if role, _ := middleware.Role(r); user.Role(role) == user.RoleEmployee {
		if own, ok := middleware.EmployeeID(r); !ok || own != p.EmployeeID {
			response.HandleError(w, employee.ErrAccessDenied)
			return nil, false
		}
	}
	return p, true
}
