package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
	"github.com/hrstack/hrms-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `p.id, p.employee_id, p.month, p.year, p.period_start, p.period_end,
	p.basic_salary, p.allowances, p.overtime_pay, p.bonus, p.earnings_total,
	p.tax, p.social_security, p.health_insurance, p.other_deductions, p.deductions_total,
	p.net_salary, p.working_days, p.present_days, p.overtime_hours,
	p.payslip_number, p.status, p.processed_by, p.processed_at, p.paid_at,
	p.created_at, p.updated_at`

func scanPayroll(row pgx.Row, withEmployee bool) (*payroll.Payroll, error) {
	var p payroll.Payroll
	dest := []any{
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.PeriodStart, &p.PeriodEnd,
		&p.Earnings.BasicSalary, &p.Earnings.Allowances, &p.Earnings.Overtime,
		&p.Earnings.Bonus, &p.Earnings.Total,
		&p.Deductions.Tax, &p.Deductions.SocialSecurity, &p.Deductions.HealthInsurance,
		&p.Deductions.Other, &p.Deductions.Total,
		&p.NetSalary, &p.WorkingDays, &p.PresentDays, &p.OvertimeHours,
		&p.PayslipNumber, &p.Status, &p.ProcessedBy, &p.ProcessedAt, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &p.EmployeeName, &p.EmployeeCode, &p.Department, &p.Position)
	}
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *payrollRepositoryImpl) Create(ctx context.Context, p *payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payroll (
			id, employee_id, month, year, period_start, period_end,
			basic_salary, allowances, overtime_pay, bonus, earnings_total,
			tax, social_security, health_insurance, other_deductions, deductions_total,
			net_salary, working_days, present_days, overtime_hours,
			payslip_number, status, processed_by, processed_at, paid_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.Month, p.Year, p.PeriodStart, p.PeriodEnd,
		p.Earnings.BasicSalary, p.Earnings.Allowances, p.Earnings.Overtime,
		p.Earnings.Bonus, p.Earnings.Total,
		p.Deductions.Tax, p.Deductions.SocialSecurity, p.Deductions.HealthInsurance,
		p.Deductions.Other, p.Deductions.Total,
		p.NetSalary, p.WorkingDays, p.PresentDays, p.OvertimeHours,
		p.PayslipNumber, p.Status, p.ProcessedBy, p.ProcessedAt, p.PaidAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err, "payroll_employee_id_month_year_key") {
			return payroll.ErrPayrollExists
		}
		return fmt.Errorf("failed to create payroll record: %w", err)
	}
	return nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `,
			e.first_name || ' ' || e.last_name, e.code, e.department, e.position
		FROM payroll p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`
	return scanPayroll(q.QueryRow(ctx, query, id), true)
}

func (r *payrollRepositoryImpl) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll p
		WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3
	`
	return scanPayroll(q.QueryRow(ctx, query, employeeID, month, year), false)
}

func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	i := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", i))
		args = append(args, *filter.EmployeeID)
		i++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("p.month = $%d", i))
		args = append(args, *filter.Month)
		i++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("p.year = $%d", i))
		args = append(args, *filter.Year)
		i++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", i))
		args = append(args, *filter.Status)
		i++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payroll p WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	query := `
		SELECT ` + payrollColumns + `,
			e.first_name || ' ' || e.last_name, e.code, e.department, e.position
		FROM payroll p
		JOIN employees e ON e.id = p.employee_id
		WHERE ` + where + `
		ORDER BY p.year DESC, p.month DESC, e.code
		LIMIT $` + fmt.Sprint(i) + ` OFFSET $` + fmt.Sprint(i+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.Payroll, 0)
	for rows.Next() {
		p, err := scanPayroll(rows, true)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *payrollRepositoryImpl) Update(ctx context.Context, p *payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll SET
			basic_salary = $2, allowances = $3, overtime_pay = $4, bonus = $5,
			earnings_total = $6,
			tax = $7, social_security = $8, health_insurance = $9,
			other_deductions = $10, deductions_total = $11,
			net_salary = $12, status = $13, processed_by = $14,
			processed_at = $15, paid_at = $16, updated_at = $17
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID,
		p.Earnings.BasicSalary, p.Earnings.Allowances, p.Earnings.Overtime, p.Earnings.Bonus,
		p.Earnings.Total,
		p.Deductions.Tax, p.Deductions.SocialSecurity, p.Deductions.HealthInsurance,
		p.Deductions.Other, p.Deductions.Total,
		p.NetSalary, p.Status, p.ProcessedBy,
		p.ProcessedAt, p.PaidAt, time.Now(),
	).Scan(&p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollNotFound
		}
		return fmt.Errorf("failed to update payroll %s: %w", p.ID, err)
	}
	return nil
}

func (r *payrollRepositoryImpl) SummaryStats(ctx context.Context, month, year int) (*payroll.SummaryStats, error) {
	q := GetQuerier(ctx, r.db)

	stats := &payroll.SummaryStats{
		Month:       month,
		Year:        year,
		Statuses:    make([]payroll.StatusSummary, 0),
		Departments: make([]payroll.DepartmentSummary, 0),
	}

	rows, err := q.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(net_salary), 0)
		FROM payroll
		WHERE month = $1 AND year = $2
		GROUP BY status
		ORDER BY status
	`, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll status summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s payroll.StatusSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.TotalNet); err != nil {
			return nil, err
		}
		stats.Statuses = append(stats.Statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	deptRows, err := q.Query(ctx, `
		SELECT e.department, COUNT(*), COALESCE(SUM(p.net_salary), 0)
		FROM payroll p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.month = $1 AND p.year = $2
		GROUP BY e.department
		ORDER BY COALESCE(SUM(p.net_salary), 0) DESC
	`, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll department summary: %w", err)
	}
	defer deptRows.Close()

	for deptRows.Next() {
		var d payroll.DepartmentSummary
		if err := deptRows.Scan(&d.Department, &d.Count, &d.TotalNet); err != nil {
			return nil, err
		}
		stats.Departments = append(stats.Departments, d)
	}
	return stats, deptRows.Err()
}
