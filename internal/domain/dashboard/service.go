package dashboard

import "context"

type DashboardService interface {
	Overview(ctx context.Context) (*OverviewResponse, error)

	// AttendanceTrends returns per-day status counts for the last n days,
	// with n clamped to a 7-90 day window.
	AttendanceTrends(ctx context.Context, days int) ([]TrendPoint, error)

	// EmployeeMetrics ranks active employees by hours worked in the
	// given month.
	EmployeeMetrics(ctx context.Context, month, year int) ([]EmployeeMetric, error)

	// PayrollAnalytics returns payroll trends for a trailing window of
	// months, clamped to 1-12 and defaulting to 6.
	PayrollAnalytics(ctx context.Context, months int) (*PayrollAnalytics, error)

	// MySummary builds the self-service rollup for the given employee.
	MySummary(ctx context.Context, employeeID string) (*MySummaryResponse, error)
}
