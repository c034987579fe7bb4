package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error
	GetByID(ctx context.Context, id string) (*Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, a *Attendance) error
	MonthlySummary(ctx context.Context, employeeID string, month, year int) (*MonthlySummary, error)

	// Report aggregates per active employee over an arbitrary date range,
	// optionally restricted to one department.
	Report(ctx context.Context, from, to time.Time, department *string) ([]ReportRow, error)
}
