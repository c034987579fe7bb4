package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/dashboard"
	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
)

const (
	recentHireLimit        = 5
	minTrendDays           = 7
	maxTrendDays           = 90
	defaultAnalyticsMonths = 6
	maxAnalyticsMonths     = 12
	recentAttendanceLimit  = 7
)

type dashboardServiceImpl struct {
	repo           dashboard.DashboardRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	payrollRepo    payroll.PayrollRepository
	logger         *slog.Logger
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	payrollRepo payroll.PayrollRepository,
	logger *slog.Logger,
) dashboard.DashboardService {
	return &dashboardServiceImpl{
		repo:           repo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		payrollRepo:    payrollRepo,
		logger:         logger,
	}
}

// Overview fans the five aggregate queries out concurrently; they are
// independent reads against the pool.
func (s *dashboardServiceImpl) Overview(ctx context.Context) (*dashboard.OverviewResponse, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var resp dashboard.OverviewResponse

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.repo.EmployeeStats(gCtx, monthStart)
		if err != nil {
			return err
		}
		resp.Employees = *stats
		return nil
	})

	g.Go(func() error {
		att, err := s.repo.AttendanceToday(gCtx, today)
		if err != nil {
			return err
		}
		resp.Attendance = *att
		return nil
	})

	g.Go(func() error {
		snapshot, err := s.repo.PayrollSnapshot(gCtx, int(now.Month()), now.Year())
		if err != nil {
			return err
		}
		resp.Payroll = *snapshot
		return nil
	})

	g.Go(func() error {
		shares, err := s.repo.DepartmentShares(gCtx)
		if err != nil {
			return err
		}
		resp.Departments = shares
		return nil
	})

	g.Go(func() error {
		hires, err := s.repo.RecentHires(gCtx, recentHireLimit)
		if err != nil {
			return err
		}
		resp.RecentHires = hires
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *dashboardServiceImpl) AttendanceTrends(ctx context.Context, days int) ([]dashboard.TrendPoint, error) {
	if days < minTrendDays {
		days = minTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	now := time.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -(days - 1))

	return s.repo.AttendanceTrends(ctx, from, to)
}

func (s *dashboardServiceImpl) EmployeeMetrics(ctx context.Context, month, year int) ([]dashboard.EmployeeMetric, error) {
	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year < 2000 {
		year = now.Year()
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	metrics, err := s.repo.EmployeeMetrics(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// Rate against weekdays elapsed so far, not the whole month, so a
	// mid-month view is not unfairly low.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := to
	if today.Before(end) {
		end = today
	}
	workingDays := weekdaysBetween(from, end)

	for i := range metrics {
		if workingDays > 0 {
			rate := float64(metrics[i].PresentDays) / float64(workingDays) * 100
			metrics[i].AttendanceRate = math.Round(rate*100) / 100
		}
	}
	return metrics, nil
}

func (s *dashboardServiceImpl) PayrollAnalytics(ctx context.Context, months int) (*dashboard.PayrollAnalytics, error) {
	if months < 1 {
		months = defaultAnalyticsMonths
	}
	if months > maxAnalyticsMonths {
		months = maxAnalyticsMonths
	}

	now := time.Now()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -(months - 1), 0)

	resp := dashboard.PayrollAnalytics{Months: months}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		trends, err := s.repo.PayrollTrends(gCtx,
			int(start.Month()), start.Year(), int(end.Month()), end.Year())
		if err != nil {
			return err
		}
		resp.MonthlyTrends = trends
		return nil
	})

	g.Go(func() error {
		breakdown, err := s.repo.DepartmentPayroll(gCtx, int(end.Month()), end.Year())
		if err != nil {
			return err
		}
		resp.DepartmentBreakdown = breakdown
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MySummary assembles the caller's own rollup. A missing attendance or
// payroll record for the current period is an empty section, not an error.
func (s *dashboardServiceImpl) MySummary(ctx context.Context, employeeID string) (*dashboard.MySummaryResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := dashboard.MySummaryResponse{
		Employee: dashboard.EmployeeHeader{
			ID:         emp.ID,
			Code:       emp.Code,
			Name:       emp.FirstName + " " + emp.LastName,
			Department: string(emp.Department),
			Position:   emp.Position,
		},
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rec, err := s.attendanceRepo.GetByEmployeeAndDate(gCtx, employeeID, today)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return nil
			}
			return err
		}
		r := attendance.ToResponse(*rec)
		resp.TodayAttendance = &r
		return nil
	})

	g.Go(func() error {
		summary, err := s.attendanceRepo.MonthlySummary(gCtx, employeeID, int(now.Month()), now.Year())
		if err != nil {
			return err
		}
		resp.MonthlySummary = summary
		return nil
	})

	g.Go(func() error {
		p, err := s.payrollRepo.GetByEmployeeAndPeriod(gCtx, employeeID, int(now.Month()), now.Year())
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollNotFound) {
				return nil
			}
			return err
		}
		r := payroll.ToResponse(*p)
		resp.CurrentPayroll = &r
		return nil
	})

	g.Go(func() error {
		recent, _, err := s.attendanceRepo.List(gCtx, attendance.AttendanceFilter{
			EmployeeID: &employeeID,
			Page:       1,
			Limit:      recentAttendanceLimit,
		})
		if err != nil {
			return err
		}
		out := make([]attendance.AttendanceResponse, 0, len(recent))
		for _, rec := range recent {
			out = append(out, attendance.ToResponse(rec))
		}
		resp.RecentAttendance = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}

func weekdaysBetween(from, to time.Time) int {
	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
