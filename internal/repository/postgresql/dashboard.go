package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hrstack/hrms-backend-go/internal/domain/dashboard"
	"github.com/hrstack/hrms-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) EmployeeStats(ctx context.Context, monthStart time.Time) (*dashboard.EmployeeStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'on-leave'),
			COUNT(*) FILTER (WHERE start_date >= $1)
		FROM employees
		WHERE status != 'terminated'
	`

	var stats dashboard.EmployeeStats
	err := q.QueryRow(ctx, query, monthStart).Scan(
		&stats.Total, &stats.Active, &stats.OnLeave, &stats.NewThisMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee stats: %w", err)
	}
	return &stats, nil
}

func (r *dashboardRepositoryImpl) AttendanceToday(ctx context.Context, date time.Time) (*dashboard.AttendanceToday, error) {
	q := GetQuerier(ctx, r.db)

	// notClockedIn counts active employees without a record for the day.
	query := `
		SELECT
			COUNT(*) FILTER (WHERE a.status IN ('present', 'half-day')),
			COUNT(*) FILTER (WHERE a.status = 'late'),
			COUNT(*) FILTER (WHERE a.status = 'absent'),
			(SELECT COUNT(*) FROM employees e
				WHERE e.status = 'active'
				AND NOT EXISTS (
					SELECT 1 FROM attendance x
					WHERE x.employee_id = e.id AND x.date = $1
				))
		FROM attendance a
		WHERE a.date = $1
	`

	var today dashboard.AttendanceToday
	err := q.QueryRow(ctx, query, date).Scan(
		&today.Present, &today.Late, &today.Absent, &today.NotClockedIn)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	return &today, nil
}

func (r *dashboardRepositoryImpl) PayrollSnapshot(ctx context.Context, month, year int) (*dashboard.PayrollSnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(net_salary), 0),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'processed'),
			COUNT(*) FILTER (WHERE status = 'paid')
		FROM payroll
		WHERE month = $1 AND year = $2
	`

	snapshot := dashboard.PayrollSnapshot{Month: month, Year: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&snapshot.TotalNetSalary, &snapshot.DraftCount,
		&snapshot.ProcessedCount, &snapshot.PaidCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll snapshot: %w", err)
	}
	return &snapshot, nil
}

func (r *dashboardRepositoryImpl) DepartmentShares(ctx context.Context) ([]dashboard.DepartmentShare, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT department, COUNT(*)
		FROM employees
		WHERE status = 'active'
		GROUP BY department
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load department shares: %w", err)
	}
	defer rows.Close()

	shares := make([]dashboard.DepartmentShare, 0)
	for rows.Next() {
		var s dashboard.DepartmentShare
		if err := rows.Scan(&s.Department, &s.Count); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

func (r *dashboardRepositoryImpl) RecentHires(ctx context.Context, limit int) ([]dashboard.RecentHire, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, code, first_name || ' ' || last_name, department, position, start_date
		FROM employees
		WHERE status = 'active'
		ORDER BY start_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent hires: %w", err)
	}
	defer rows.Close()

	hires := make([]dashboard.RecentHire, 0)
	for rows.Next() {
		var h dashboard.RecentHire
		if err := rows.Scan(&h.ID, &h.Code, &h.Name, &h.Department, &h.Position, &h.StartDate); err != nil {
			return nil, err
		}
		hires = append(hires, h)
	}
	return hires, rows.Err()
}

func (r *dashboardRepositoryImpl) AttendanceTrends(ctx context.Context, from, to time.Time) ([]dashboard.TrendPoint, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT
			date,
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'half-day')
		FROM attendance
		WHERE date BETWEEN $1 AND $2
		GROUP BY date
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance trends: %w", err)
	}
	defer rows.Close()

	points := make([]dashboard.TrendPoint, 0)
	for rows.Next() {
		var day time.Time
		var p dashboard.TrendPoint
		if err := rows.Scan(&day, &p.Present, &p.Late, &p.Absent, &p.HalfDay); err != nil {
			return nil, err
		}
		p.Date = day.Format("2006-01-02")
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *dashboardRepositoryImpl) EmployeeMetrics(ctx context.Context, from, to time.Time) ([]dashboard.EmployeeMetric, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT
			e.id, e.code, e.first_name || ' ' || e.last_name, e.department,
			COUNT(a.id) FILTER (WHERE a.status IN ('present', 'late', 'half-day')),
			COUNT(a.id) FILTER (WHERE a.status = 'late'),
			COALESCE(SUM(a.working_hours), 0),
			COALESCE(SUM(a.overtime_hours), 0)
		FROM employees e
		LEFT JOIN attendance a
			ON a.employee_id = e.id AND a.date BETWEEN $1 AND $2
		WHERE e.status = 'active'
		GROUP BY e.id, e.code, e.first_name, e.last_name, e.department
		ORDER BY COALESCE(SUM(a.working_hours), 0) DESC, e.code
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee metrics: %w", err)
	}
	defer rows.Close()

	metrics := make([]dashboard.EmployeeMetric, 0)
	for rows.Next() {
		var m dashboard.EmployeeMetric
		err := rows.Scan(&m.EmployeeID, &m.Code, &m.Name, &m.Department,
			&m.PresentDays, &m.LateDays, &m.TotalHours, &m.OvertimeHours)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

func (r *dashboardRepositoryImpl) PayrollTrends(ctx context.Context, fromMonth, fromYear, toMonth, toYear int) ([]dashboard.PayrollMonthPoint, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT
			month, year,
			COUNT(*),
			COALESCE(SUM(earnings_total), 0),
			COALESCE(SUM(deductions_total), 0),
			COALESCE(SUM(net_salary), 0),
			COALESCE(AVG(net_salary), 0)
		FROM payroll
		WHERE (year, month) BETWEEN ($2, $1) AND ($4, $3)
		GROUP BY month, year
		ORDER BY year, month
	`, fromMonth, fromYear, toMonth, toYear)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll trends: %w", err)
	}
	defer rows.Close()

	points := make([]dashboard.PayrollMonthPoint, 0)
	for rows.Next() {
		var p dashboard.PayrollMonthPoint
		err := rows.Scan(&p.Month, &p.Year, &p.EmployeeCount,
			&p.GrossEarnings, &p.Deductions, &p.NetSalary, &p.AverageNet)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *dashboardRepositoryImpl) DepartmentPayroll(ctx context.Context, month, year int) ([]dashboard.DepartmentPayroll, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT
			e.department,
			COUNT(*),
			COALESCE(SUM(p.net_salary), 0),
			COALESCE(AVG(p.net_salary), 0)
		FROM payroll p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.month = $1 AND p.year = $2
		GROUP BY e.department
		ORDER BY SUM(p.net_salary) DESC
	`, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load department payroll: %w", err)
	}
	defer rows.Close()

	breakdown := make([]dashboard.DepartmentPayroll, 0)
	for rows.Next() {
		var d dashboard.DepartmentPayroll
		if err := rows.Scan(&d.Department, &d.EmployeeCount, &d.TotalNet, &d.AverageNet); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, d)
	}
	return breakdown, rows.Err()
}
