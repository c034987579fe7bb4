package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	EmployeeStats(ctx context.Context, monthStart time.Time) (*EmployeeStats, error)
	AttendanceToday(ctx context.Context, date time.Time) (*AttendanceToday, error)
	PayrollSnapshot(ctx context.Context, month, year int) (*PayrollSnapshot, error)
	DepartmentShares(ctx context.Context) ([]DepartmentShare, error)
	RecentHires(ctx context.Context, limit int) ([]RecentHire, error)
	AttendanceTrends(ctx context.Context, from, to time.Time) ([]TrendPoint, error)
	EmployeeMetrics(ctx context.Context, from, to time.Time) ([]EmployeeMetric, error)

	// PayrollTrends aggregates payroll per month over an inclusive
	// (month, year) range.
	PayrollTrends(ctx context.Context, fromMonth, fromYear, toMonth, toYear int) ([]PayrollMonthPoint, error)
	DepartmentPayroll(ctx context.Context, month, year int) ([]DepartmentPayroll, error)
}
