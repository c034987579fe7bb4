package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `e.id, e.code, e.user_id,
	e.first_name, e.last_name, e.email, e.phone, e.date_of_birth, e.gender,
	e.address_street, e.address_city, e.address_state, e.address_zip_code, e.address_country,
	e.emergency_name, e.emergency_relation, e.emergency_phone,
	e.department, e.position, e.employment_type, e.work_location,
	e.start_date, e.end_date, e.reporting_manager_id,
	e.basic_salary, e.allowances, e.salary_currency,
	e.profile_picture_url, e.resume_url, e.id_proof_url,
	e.status, e.created_at, e.updated_at`

func scanEmployee(row pgx.Row, withManager bool) (*employee.Employee, error) {
	var e employee.Employee
	dest := []any{
		&e.ID, &e.Code, &e.UserID,
		&e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.DateOfBirth, &e.Gender,
		&e.AddressStreet, &e.AddressCity, &e.AddressState, &e.AddressZipCode, &e.AddressCountry,
		&e.EmergencyName, &e.EmergencyRelation, &e.EmergencyPhone,
		&e.Department, &e.Position, &e.EmploymentType, &e.WorkLocation,
		&e.StartDate, &e.EndDate, &e.ReportingManagerID,
		&e.BasicSalary, &e.Allowances, &e.SalaryCurrency,
		&e.ProfilePictureURL, &e.ResumeURL, &e.IDProofURL,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	}
	if withManager {
		dest = append(dest, &e.ManagerName, &e.ManagerCode)
	}
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO employees (
			id, code, user_id,
			first_name, last_name, email, phone, date_of_birth, gender,
			address_street, address_city, address_state, address_zip_code, address_country,
			emergency_name, emergency_relation, emergency_phone,
			department, position, employment_type, work_location,
			start_date, end_date, reporting_manager_id,
			basic_salary, allowances, salary_currency,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28
		)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.Code, e.UserID,
		e.FirstName, e.LastName, e.Email, e.Phone, e.DateOfBirth, e.Gender,
		e.AddressStreet, e.AddressCity, e.AddressState, e.AddressZipCode, e.AddressCountry,
		e.EmergencyName, e.EmergencyRelation, e.EmergencyPhone,
		e.Department, e.Position, e.EmploymentType, e.WorkLocation,
		e.StartDate, e.EndDate, e.ReportingManagerID,
		e.BasicSalary, e.Allowances, e.SalaryCurrency,
		e.Status,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err, "employees_code_key") {
			return employee.ErrEmployeeCodeExists
		}
		if IsUniqueViolation(err, "employees_user_id_key") {
			return employee.ErrUserAlreadyLinked
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `,
			m.first_name || ' ' || m.last_name, m.code
		FROM employees e
		LEFT JOIN employees m ON m.id = e.reporting_manager_id
		WHERE e.id = $1
	`
	return scanEmployee(q.QueryRow(ctx, query, id), true)
}

func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `,
			m.first_name || ' ' || m.last_name, m.code
		FROM employees e
		LEFT JOIN employees m ON m.id = e.reporting_manager_id
		WHERE e.code = $1
	`
	return scanEmployee(q.QueryRow(ctx, query, code), true)
}

func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.user_id = $1
	`
	return scanEmployee(q.QueryRow(ctx, query, userID), false)
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	i := 1

	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("e.department = $%d", i))
		args = append(args, *filter.Department)
		i++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", i))
		args = append(args, *filter.Status)
		i++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.email ILIKE $%d OR e.code ILIKE $%d)",
			i, i, i, i))
		args = append(args, "%"+*filter.Search+"%")
		i++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM employees e WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `
		SELECT ` + employeeColumns + `,
			m.first_name || ' ' || m.last_name, m.code
		FROM employees e
		LEFT JOIN employees m ON m.id = e.reporting_manager_id
		WHERE ` + where + `
		ORDER BY e.code
		LIMIT $` + fmt.Sprint(i) + ` OFFSET $` + fmt.Sprint(i+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows, true)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			address_street = $6, address_city = $7, address_state = $8,
			address_zip_code = $9, address_country = $10,
			emergency_name = $11, emergency_relation = $12, emergency_phone = $13,
			department = $14, position = $15, employment_type = $16, work_location = $17,
			end_date = $18, reporting_manager_id = $19,
			basic_salary = $20, allowances = $21,
			status = $22, updated_at = $23
		WHERE id = $1
		RETURNING updated_at
	`

	now := time.Now()
	err := q.QueryRow(ctx, query,
		e.ID,
		e.FirstName, e.LastName, e.Email, e.Phone,
		e.AddressStreet, e.AddressCity, e.AddressState,
		e.AddressZipCode, e.AddressCountry,
		e.EmergencyName, e.EmergencyRelation, e.EmergencyPhone,
		e.Department, e.Position, e.EmploymentType, e.WorkLocation,
		e.EndDate, e.ReportingManagerID,
		e.BasicSalary, e.Allowances,
		e.Status, now,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee %s: %w", e.ID, err)
	}
	return nil
}

func (r *employeeRepositoryImpl) SetStatus(ctx context.Context, id string, status employee.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set status for employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// NextCode derives the next sequential code from the highest existing one.
// The unique index on code catches the race between two concurrent hires.
func (r *employeeRepositoryImpl) NextCode(ctx context.Context) (string, error) {
	q := GetQuerier(ctx, r.db)

	var maxSeq int
	query := `SELECT COALESCE(MAX(CAST(SUBSTRING(code FROM 4) AS INTEGER)), 0) FROM employees`
	if err := q.QueryRow(ctx, query).Scan(&maxSeq); err != nil {
		return "", fmt.Errorf("failed to compute next employee code: %w", err)
	}
	return fmt.Sprintf("EMP%04d", maxSeq+1), nil
}

func (r *employeeRepositoryImpl) ManagerAssignments(ctx context.Context) (map[string]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, reporting_manager_id FROM employees WHERE reporting_manager_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to load manager assignments: %w", err)
	}
	defer rows.Close()

	assignments := make(map[string]string)
	for rows.Next() {
		var id, managerID string
		if err := rows.Scan(&id, &managerID); err != nil {
			return nil, err
		}
		assignments[id] = managerID
	}
	return assignments, rows.Err()
}

func (r *employeeRepositoryImpl) StatsOverview(ctx context.Context) (*employee.StatsOverviewResponse, error) {
	q := GetQuerier(ctx, r.db)

	var stats employee.StatsOverviewResponse

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'inactive'),
			COUNT(*) FILTER (WHERE status = 'terminated'),
			COUNT(*) FILTER (WHERE status = 'on-leave')
		FROM employees
	`
	err := q.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Active, &stats.Inactive, &stats.Terminated, &stats.OnLeave)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee stats: %w", err)
	}

	deptRows, err := q.Query(ctx, `
		SELECT department, COUNT(*)
		FROM employees
		WHERE status = 'active'
		GROUP BY department
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load department stats: %w", err)
	}
	defer deptRows.Close()

	for deptRows.Next() {
		var dc employee.DepartmentCount
		if err := deptRows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, err
		}
		stats.DepartmentStats = append(stats.DepartmentStats, dc)
	}
	if err := deptRows.Err(); err != nil {
		return nil, err
	}

	typeRows, err := q.Query(ctx, `
		SELECT employment_type, COUNT(*)
		FROM employees
		WHERE status = 'active'
		GROUP BY employment_type
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load employment type stats: %w", err)
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var tc employee.EmploymentTypeCount
		if err := typeRows.Scan(&tc.EmploymentType, &tc.Count); err != nil {
			return nil, err
		}
		stats.EmploymentTypeStats = append(stats.EmploymentTypeStats, tc)
	}
	return &stats, typeRows.Err()
}
