package response

import (
	"errors"
	"net/http"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/auth"
	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
	"github.com/hrstack/hrms-backend-go/internal/domain/user"
	"github.com/hrstack/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrWrongPassword):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAccountDeactivated):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, "HR access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrUserAlreadyLinked):
		Conflict(w, "User already linked to an employee")
	case errors.Is(err, employee.ErrManagerNotFound):
		BadRequest(w, "Reporting manager not found", nil)
	case errors.Is(err, employee.ErrManagerCycle):
		BadRequest(w, "Reporting manager assignment would create a cycle", nil)
	case errors.Is(err, employee.ErrAccessDenied):
		Forbidden(w, "Access denied")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in for today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "Not clocked in yet", nil)
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out for today")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		BadRequest(w, "No break in progress", nil)
	case errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, "Attendance record already exists for this date")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, "Invalid payroll status transition")
	case errors.Is(err, payroll.ErrPayslipNotAvailable):
		BadRequest(w, "Payslip not available for this record", nil)
	case errors.Is(err, payroll.ErrNoEligibleEmployees):
		BadRequest(w, "No eligible employees for payroll generation", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
