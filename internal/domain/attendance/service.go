package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, employeeID string, req *ClockInRequest) (*Attendance, error)
	ClockOut(ctx context.Context, employeeID string, req *ClockOutRequest) (*Attendance, error)
	StartBreak(ctx context.Context, employeeID string) (*Attendance, error)
	EndBreak(ctx context.Context, employeeID string) (*Attendance, error)
	Today(ctx context.Context, employeeID string) (*Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Mark(ctx context.Context, req *MarkRequest) (*Attendance, error)
	Summary(ctx context.Context, employeeID string, month, year int) (*MonthlySummary, error)
	Report(ctx context.Context, from, to time.Time, department *string) (*ReportResponse, error)
}
