package attendance

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/pkg/validator"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	logger         *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		logger:         logger,
	}
}

// dateOf truncates a timestamp to its calendar day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *attendanceServiceImpl) ClockIn(ctx context.Context, employeeID string, req *attendance.ClockInRequest) (*attendance.Attendance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	now := time.Now()
	today := dateOf(now)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	switch {
	case err == nil:
		if existing.ClockInTime != nil {
			return nil, attendance.ErrAlreadyClockedIn
		}
		// A manually marked day (holiday, leave) exists without clock
		// events. Record the clock-in but keep the assigned status.
		existing.ClockInTime = &now
		existing.ClockInLocation = req.Location
		if !existing.Manual {
			existing.Status = attendance.DeriveStatus(existing.ClockInTime, nil, existing.Breaks)
		}
		appendNote(existing, req.Notes)
		if err := s.attendanceRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil

	case errors.Is(err, attendance.ErrAttendanceNotFound):
		a := &attendance.Attendance{
			EmployeeID:      employeeID,
			Date:            today,
			ClockInTime:     &now,
			ClockInLocation: req.Location,
			Status:          attendance.DeriveStatus(&now, nil, nil),
			Notes:           req.Notes,
		}
		if err := s.attendanceRepo.Create(ctx, a); err != nil {
			// Lost the race with a concurrent clock-in for the same day.
			if errors.Is(err, attendance.ErrRecordExists) {
				return nil, attendance.ErrAlreadyClockedIn
			}
			return nil, err
		}
		s.logger.InfoContext(ctx, "clocked in", "employee_id", employeeID, "late", a.Status == attendance.StatusLate)
		return a, nil

	default:
		return nil, err
	}
}

func (s *attendanceServiceImpl) ClockOut(ctx context.Context, employeeID string, req *attendance.ClockOutRequest) (*attendance.Attendance, error) {
	now := time.Now()

	a, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, dateOf(now))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, attendance.ErrNotClockedIn
		}
		return nil, err
	}
	if a.ClockInTime == nil {
		return nil, attendance.ErrNotClockedIn
	}
	if a.ClockOutTime != nil {
		return nil, attendance.ErrAlreadyClockedOut
	}

	// An open break ends when the day does.
	if a.HasOpenBreak() {
		a.Breaks[len(a.Breaks)-1].End = &now
	}

	a.ClockOutTime = &now
	a.ClockOutLocation = req.Location
	s.recompute(a)
	appendNote(a, req.Notes)

	if err := s.attendanceRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "clocked out",
		"employee_id", employeeID, "working_hours", a.WorkingHours, "status", a.Status)
	return a, nil
}

func (s *attendanceServiceImpl) StartBreak(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	now := time.Now()

	a, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, dateOf(now))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, attendance.ErrNotClockedIn
		}
		return nil, err
	}
	if a.ClockInTime == nil {
		return nil, attendance.ErrNotClockedIn
	}
	if a.ClockOutTime != nil {
		return nil, attendance.ErrAlreadyClockedOut
	}
	if a.HasOpenBreak() {
		return nil, attendance.ErrBreakAlreadyOpen
	}

	a.Breaks = append(a.Breaks, attendance.BreakPeriod{Start: now})
	if err := s.attendanceRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *attendanceServiceImpl) EndBreak(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	now := time.Now()

	a, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, dateOf(now))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, attendance.ErrNotClockedIn
		}
		return nil, err
	}
	if !a.HasOpenBreak() {
		return nil, attendance.ErrNoOpenBreak
	}

	a.Breaks[len(a.Breaks)-1].End = &now
	if err := s.attendanceRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *attendanceServiceImpl) Today(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	return s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, dateOf(time.Now()))
}

func (s *attendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 31
	}
	return s.attendanceRepo.List(ctx, filter)
}

// Mark creates or replaces a record with an explicit status. Marked
// records keep that status through later clock events.
func (s *attendanceServiceImpl) Mark(ctx context.Context, req *attendance.MarkRequest) (*attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	date, _ := validator.IsValidDate(req.Date)

	var clockIn, clockOut *time.Time
	if req.ClockIn != nil {
		t, _ := validator.IsValidDateTime(*req.ClockIn)
		clockIn = &t
	}
	if req.ClockOut != nil {
		t, _ := validator.IsValidDateTime(*req.ClockOut)
		clockOut = &t
	}

	a, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	switch {
	case err == nil:
		a.ClockInTime = clockIn
		a.ClockOutTime = clockOut
		a.Status = attendance.Status(req.Status)
		a.Manual = true
		a.Notes = req.Notes
		a.WorkingHours = attendance.WorkingHours(clockIn, clockOut, a.Breaks)
		a.OvertimeHours = attendance.OvertimeHours(a.WorkingHours)
		if err := s.attendanceRepo.Update(ctx, a); err != nil {
			return nil, err
		}
		return a, nil

	case errors.Is(err, attendance.ErrAttendanceNotFound):
		a = &attendance.Attendance{
			EmployeeID:   req.EmployeeID,
			Date:         date,
			ClockInTime:  clockIn,
			ClockOutTime: clockOut,
			Status:       attendance.Status(req.Status),
			Manual:       true,
			Notes:        req.Notes,
		}
		a.WorkingHours = attendance.WorkingHours(clockIn, clockOut, nil)
		a.OvertimeHours = attendance.OvertimeHours(a.WorkingHours)
		if err := s.attendanceRepo.Create(ctx, a); err != nil {
			return nil, err
		}
		return a, nil

	default:
		return nil, err
	}
}

func (s *attendanceServiceImpl) Summary(ctx context.Context, employeeID string, month, year int) (*attendance.MonthlySummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.MonthlySummary(ctx, employeeID, month, year)
}

func (s *attendanceServiceImpl) Report(ctx context.Context, from, to time.Time, department *string) (*attendance.ReportResponse, error) {
	if to.Before(from) {
		return nil, validator.ValidationErrors{
			{Field: "endDate", Message: "must not precede startDate"},
		}
	}

	rows, err := s.attendanceRepo.Report(ctx, from, to, department)
	if err != nil {
		return nil, err
	}

	dept := "All Departments"
	if department != nil {
		dept = *department
	}
	return &attendance.ReportResponse{
		From:       from.Format("2006-01-02"),
		To:         to.Format("2006-01-02"),
		Department: dept,
		Employees:  len(rows),
		Rows:       rows,
	}, nil
}

func (s *attendanceServiceImpl) recompute(a *attendance.Attendance) {
	a.WorkingHours = attendance.WorkingHours(a.ClockInTime, a.ClockOutTime, a.Breaks)
	a.OvertimeHours = attendance.OvertimeHours(a.WorkingHours)
	if !a.Manual {
		a.Status = attendance.DeriveStatus(a.ClockInTime, a.ClockOutTime, a.Breaks)
	}
}

func appendNote(a *attendance.Attendance, note string) {
	if note == "" {
		return
	}
	if a.Notes == "" {
		a.Notes = note
		return
	}
	a.Notes = strings.TrimSpace(a.Notes) + "; " + note
}
