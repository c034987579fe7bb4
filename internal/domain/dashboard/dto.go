package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
)

type EmployeeStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	OnLeave      int64 `json:"onLeave"`
	NewThisMonth int64 `json:"newThisMonth"`
}

type AttendanceToday struct {
	Present      int64 `json:"present"`
	Late         int64 `json:"late"`
	Absent       int64 `json:"absent"`
	NotClockedIn int64 `json:"notClockedIn"`
}

type PayrollSnapshot struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	TotalNetSalary decimal.Decimal `json:"totalNetSalary"`
	DraftCount     int64           `json:"draftCount"`
	ProcessedCount int64           `json:"processedCount"`
	PaidCount      int64           `json:"paidCount"`
}

type DepartmentShare struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type RecentHire struct {
	ID         string    `json:"id"`
	Code       string    `json:"employeeId"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	StartDate  time.Time `json:"startDate"`
}

type TrendPoint struct {
	Date    string `json:"date"`
	Present int64  `json:"present"`
	Late    int64  `json:"late"`
	Absent  int64  `json:"absent"`
	HalfDay int64  `json:"halfDay"`
}

type EmployeeMetric struct {
	EmployeeID     string  `json:"employeeId"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	PresentDays    int     `json:"presentDays"`
	LateDays       int     `json:"lateDays"`
	TotalHours     float64 `json:"totalHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
	AttendanceRate float64 `json:"attendanceRate"`
}

type PayrollMonthPoint struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	EmployeeCount int64           `json:"employeeCount"`
	GrossEarnings decimal.Decimal `json:"totalGrossEarnings"`
	Deductions    decimal.Decimal `json:"totalDeductions"`
	NetSalary     decimal.Decimal `json:"totalNetSalary"`
	AverageNet    decimal.Decimal `json:"averageNetSalary"`
}

type DepartmentPayroll struct {
	Department    string          `json:"department"`
	EmployeeCount int64           `json:"employeeCount"`
	TotalNet      decimal.Decimal `json:"totalPayroll"`
	AverageNet    decimal.Decimal `json:"averageSalary"`
}

// PayrollAnalytics covers a trailing window of payroll months ending
// at the current month, plus the current month broken down by department.
type PayrollAnalytics struct {
	Months              int                 `json:"months"`
	MonthlyTrends       []PayrollMonthPoint `json:"monthlyTrends"`
	DepartmentBreakdown []DepartmentPayroll `json:"departmentBreakdown"`
}

type EmployeeHeader struct {
	ID         string `json:"id"`
	Code       string `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// MySummaryResponse is the employee self-service rollup: today's record,
// the current month's attendance totals and payroll, and recent history.
type MySummaryResponse struct {
	Employee         EmployeeHeader                  `json:"employee"`
	TodayAttendance  *attendance.AttendanceResponse  `json:"todayAttendance"`
	MonthlySummary   *attendance.MonthlySummary      `json:"monthlyAttendance"`
	CurrentPayroll   *payroll.PayrollResponse        `json:"currentPayroll"`
	RecentAttendance []attendance.AttendanceResponse `json:"recentAttendance"`
}

type OverviewResponse struct {
	Employees   EmployeeStats     `json:"employees"`
	Attendance  AttendanceToday   `json:"attendance"`
	Payroll     PayrollSnapshot   `json:"payroll"`
	Departments []DepartmentShare `json:"departments"`
	RecentHires []RecentHire      `json:"recentHires"`
}
