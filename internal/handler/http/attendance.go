package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/domain/user"
	"github.com/hrstack/hrms-backend-go/internal/handler/http/middleware"
	"github.com/hrstack/hrms-backend-go/internal/handler/http/response"
	"github.com/hrstack/hrms-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ownEmployeeID resolves the caller's employee record; clock operations
// always act on the caller, never on someone else.
func ownEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.EmployeeID(r)
	if !ok {
		response.BadRequest(w, "No employee record linked to this account", nil)
		return "", false
	}
	return id, true
}

func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := ownEmployeeID(w, r)
	if !ok {
		return
	}

	var req attendance.ClockInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	a, err := h.attendanceService.ClockIn(r.Context(), employeeID, &req)
	if err != nil {
		slog.Error("ClockIn service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked in", attendance.ToResponse(*a))
}

func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := ownEmployeeID(w, r)
	if !ok {
		return
	}

	var req attendance.ClockOutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	a, err := h.attendanceService.ClockOut(r.Context(), employeeID, &req)
	if err != nil {
		slog.Error("ClockOut service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked out", attendance.ToResponse(*a))
}

func (h *AttendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := ownEmployeeID(w, r)
	if !ok {
		return
	}

	a, err := h.attendanceService.StartBreak(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break started", attendance.ToResponse(*a))
}

func (h *AttendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := ownEmployeeID(w, r)
	if !ok {
		return
	}

	a, err := h.attendanceService.EndBreak(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break ended", attendance.ToResponse(*a))
}

func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := ownEmployeeID(w, r)
	if !ok {
		return
	}

	a, err := h.attendanceService.Today(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			// No record yet is a normal state, not an error.
			response.Success(w, attendance.ToTodayResponse(nil))
			return
		}
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.ToTodayResponse(a))
}

func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := attendance.AttendanceFilter{}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("employeeId"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.From = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.To = &t
		}
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 31
	}

	// Regular employees only see their own history.
	if role, _ := middleware.Role(r); user.Role(role) == user.RoleEmployee {
		own, ok := middleware.EmployeeID(r)
		if !ok {
			response.HandleError(w, employee.ErrAccessDenied)
			return
		}
		filter.EmployeeID = &own
	}

	records, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		items = append(items, attendance.ToResponse(a))
	}
	response.SuccessWithPagination(w, items, response.NewPagination(filter.Page, filter.Limit, total))
}

func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	a, err := h.attendanceService.Mark(r.Context(), &req)
	if err != nil {
		slog.Error("Mark attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance marked", attendance.ToResponse(*a))
}

func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	if role, _ := middleware.Role(r); user.Role(role) == user.RoleEmployee {
		if own, ok := middleware.EmployeeID(r); !ok || own != employeeID {
			response.HandleError(w, employee.ErrAccessDenied)
			return
		}
	}

	now := time.Now()
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	summary, err := h.attendanceService.Summary(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *AttendanceHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, ok := validator.IsValidDate(q.Get("startDate"))
	if !ok {
		response.BadRequest(w, "Validation failed", map[string]string{"startDate": "must be a date in YYYY-MM-DD format"})
		return
	}
	to, ok := validator.IsValidDate(q.Get("endDate"))
	if !ok {
		response.BadRequest(w, "Validation failed", map[string]string{"endDate": "must be a date in YYYY-MM-DD format"})
		return
	}

	var department *string
	if v := q.Get("department"); v != "" {
		department = &v
	}

	report, err := h.attendanceService.Report(r.Context(), from, to, department)
	if err != nil {
		slog.Error("Attendance report service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}
