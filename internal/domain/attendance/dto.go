package attendance

import (
	"time"

	"github.com/hrstack/hrms-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type ClockOutRequest struct {
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// MarkRequest is the administrative override: it creates or replaces a
// record with an explicit status that later clock events will not change.
type MarkRequest struct {
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Status     string  `json:"status"`
	ClockIn    *string `json:"clockIn,omitempty"`  // RFC 3339
	ClockOut   *string `json:"clockOut,omitempty"` // RFC 3339
	Notes      string  `json:"notes,omitempty"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "must be a valid id"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a valid attendance status"})
	}
	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "clockIn", Message: "must be an RFC 3339 timestamp"})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "clockOut", Message: "must be an RFC 3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
	Status     *string
	Page       int
	Limit      int
}

type AttendanceResponse struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employeeId"`
	EmployeeName     *string    `json:"employeeName,omitempty"`
	EmployeeCode     *string    `json:"employeeCode,omitempty"`
	Date             string     `json:"date"`
	ClockInTime      *time.Time `json:"clockInTime,omitempty"`
	ClockOutTime     *time.Time `json:"clockOutTime,omitempty"`
	ClockInLocation  string     `json:"clockInLocation,omitempty"`
	ClockOutLocation string     `json:"clockOutLocation,omitempty"`

	Breaks        []BreakPeriod `json:"breaks"`
	WorkingHours  float64       `json:"workingHours"`
	OvertimeHours float64       `json:"overtimeHours"`
	Status        string        `json:"status"`
	Manual        bool          `json:"manual"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func ToResponse(a Attendance) AttendanceResponse {
	breaks := a.Breaks
	if breaks == nil {
		breaks = []BreakPeriod{}
	}
	return AttendanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		EmployeeName:     a.EmployeeName,
		EmployeeCode:     a.EmployeeCode,
		Date:             a.Date.Format("2006-01-02"),
		ClockInTime:      a.ClockInTime,
		ClockOutTime:     a.ClockOutTime,
		ClockInLocation:  a.ClockInLocation,
		ClockOutLocation: a.ClockOutLocation,
		Breaks:           breaks,
		WorkingHours:     a.WorkingHours,
		OvertimeHours:    a.OvertimeHours,
		Status:           string(a.Status),
		Manual:           a.Manual,
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// TodayResponse wraps today's record with the clock actions currently
// available to the employee.
type TodayResponse struct {
	Attendance  *AttendanceResponse `json:"attendance"`
	CanClockIn  bool                `json:"canClockIn"`
	CanClockOut bool                `json:"canClockOut"`
}

func ToTodayResponse(a *Attendance) TodayResponse {
	if a == nil {
		return TodayResponse{CanClockIn: true}
	}
	resp := ToResponse(*a)
	return TodayResponse{
		Attendance:  &resp,
		CanClockIn:  a.ClockInTime == nil,
		CanClockOut: a.ClockInTime != nil && a.ClockOutTime == nil,
	}
}

// MonthlySummary aggregates one employee's records for a calendar month.
// It feeds both the summary endpoint and payroll generation.
type MonthlySummary struct {
	EmployeeID    string  `json:"employeeId"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	PresentDays   int     `json:"presentDays"`
	AbsentDays    int     `json:"absentDays"`
	LateDays      int     `json:"lateDays"`
	HalfDays      int     `json:"halfDays"`
	LeaveDays     int     `json:"leaveDays"`
	HolidayDays   int     `json:"holidayDays"`
	WorkingHours  float64 `json:"workingHours"`
	OvertimeHours float64 `json:"overtimeHours"`
}

// ReportRow is one active employee's rollup over a report range.
// Employees without any record in the range appear with zero counters.
type ReportRow struct {
	EmployeeID    string  `json:"employeeId"`
	EmployeeCode  string  `json:"employeeCode"`
	EmployeeName  string  `json:"employeeName"`
	Department    string  `json:"department"`
	Position      string  `json:"position"`
	TotalDays     int     `json:"totalDays"`
	PresentDays   int     `json:"presentDays"`
	LateDays      int     `json:"lateDays"`
	AbsentDays    int     `json:"absentDays"`
	WorkingHours  float64 `json:"workingHours"`
	OvertimeHours float64 `json:"overtimeHours"`
}

type ReportResponse struct {
	From       string      `json:"from"`
	To         string      `json:"to"`
	Department string      `json:"department"`
	Employees  int         `json:"totalEmployees"`
	Rows       []ReportRow `json:"report"`
}
