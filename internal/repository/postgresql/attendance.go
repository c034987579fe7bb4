package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.date, a.clock_in_time, a.clock_out_time,
	a.clock_in_location, a.clock_out_location,
	a.breaks, a.working_hours, a.overtime_hours, a.status, a.manual, a.notes,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, withEmployee bool) (*attendance.Attendance, error) {
	var a attendance.Attendance
	var breaksJSON []byte

	dest := []any{
		&a.ID, &a.EmployeeID, &a.Date, &a.ClockInTime, &a.ClockOutTime,
		&a.ClockInLocation, &a.ClockOutLocation,
		&breaksJSON, &a.WorkingHours, &a.OvertimeHours, &a.Status, &a.Manual, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &a.EmployeeName, &a.EmployeeCode)
	}
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, err
	}

	if len(breaksJSON) > 0 {
		if err := json.Unmarshal(breaksJSON, &a.Breaks); err != nil {
			return nil, fmt.Errorf("failed to decode breaks for attendance %s: %w", a.ID, err)
		}
	}
	return &a, nil
}

func marshalBreaks(breaks []attendance.BreakPeriod) ([]byte, error) {
	if breaks == nil {
		breaks = []attendance.BreakPeriod{}
	}
	return json.Marshal(breaks)
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	breaksJSON, err := marshalBreaks(a.Breaks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO attendance (
			id, employee_id, date, clock_in_time, clock_out_time,
			clock_in_location, clock_out_location,
			breaks, working_hours, overtime_hours, status, manual, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.Date, a.ClockInTime, a.ClockOutTime,
		a.ClockInLocation, a.ClockOutLocation,
		breaksJSON, a.WorkingHours, a.OvertimeHours, a.Status, a.Manual, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err, "attendance_employee_id_date_key") {
			return attendance.ErrRecordExists
		}
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `,
			e.first_name || ' ' || e.last_name, e.code
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`
	return scanAttendance(q.QueryRow(ctx, query, id), true)
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.employee_id = $1 AND a.date = $2
	`
	return scanAttendance(q.QueryRow(ctx, query, employeeID, date), false)
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []any{}
	i := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", i))
		args = append(args, *filter.EmployeeID)
		i++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", i))
		args = append(args, *filter.From)
		i++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", i))
		args = append(args, *filter.To)
		i++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", i))
		args = append(args, *filter.Status)
		i++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendance a WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `,
			e.first_name || ' ' || e.last_name, e.code
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + where + `
		ORDER BY a.date DESC, e.code
		LIMIT $` + fmt.Sprint(i) + ` OFFSET $` + fmt.Sprint(i+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows, true)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	breaksJSON, err := marshalBreaks(a.Breaks)
	if err != nil {
		return err
	}

	query := `
		UPDATE attendance SET
			clock_in_time = $2, clock_out_time = $3,
			clock_in_location = $4, clock_out_location = $5, breaks = $6,
			working_hours = $7, overtime_hours = $8, status = $9,
			manual = $10, notes = $11, updated_at = $12
		WHERE id = $1
		RETURNING updated_at
	`

	err = q.QueryRow(ctx, query,
		a.ID, a.ClockInTime, a.ClockOutTime,
		a.ClockInLocation, a.ClockOutLocation, breaksJSON,
		a.WorkingHours, a.OvertimeHours, a.Status,
		a.Manual, a.Notes, time.Now(),
	).Scan(&a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance %s: %w", a.ID, err)
	}
	return nil
}

func (r *attendanceRepositoryImpl) MonthlySummary(ctx context.Context, employeeID string, month, year int) (*attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'half-day'),
			COUNT(*) FILTER (WHERE status = 'leave'),
			COUNT(*) FILTER (WHERE status = 'holiday'),
			COALESCE(SUM(working_hours), 0),
			COALESCE(SUM(overtime_hours), 0)
		FROM attendance
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	s := attendance.MonthlySummary{EmployeeID: employeeID, Month: month, Year: year}
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(
		&s.PresentDays, &s.AbsentDays, &s.LateDays, &s.HalfDays,
		&s.LeaveDays, &s.HolidayDays, &s.WorkingHours, &s.OvertimeHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly summary: %w", err)
	}
	return &s, nil
}

func (r *attendanceRepositoryImpl) Report(ctx context.Context, from, to time.Time, department *string) ([]attendance.ReportRow, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"e.status = 'active'"}
	args := []any{from, to}
	if department != nil {
		conditions = append(conditions, "e.department = $3")
		args = append(args, *department)
	}

	query := `
		SELECT
			e.id, e.code, e.first_name || ' ' || e.last_name, e.department, e.position,
			COUNT(a.id),
			COUNT(a.id) FILTER (WHERE a.status IN ('present', 'late')),
			COUNT(a.id) FILTER (WHERE a.status = 'late'),
			COUNT(a.id) FILTER (WHERE a.status = 'absent'),
			COALESCE(SUM(a.working_hours), 0),
			COALESCE(SUM(a.overtime_hours), 0)
		FROM employees e
		LEFT JOIN attendance a
			ON a.employee_id = e.id AND a.date BETWEEN $1 AND $2
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY e.id, e.code, e.first_name, e.last_name, e.department, e.position
		ORDER BY e.code
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance report: %w", err)
	}
	defer rows.Close()

	report := make([]attendance.ReportRow, 0)
	for rows.Next() {
		var row attendance.ReportRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName, &row.Department, &row.Position,
			&row.TotalDays, &row.PresentDays, &row.LateDays, &row.AbsentDays,
			&row.WorkingHours, &row.OvertimeHours,
		)
		if err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
