package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/dashboard"
	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
)

type fakeDashboardRepo struct {
	trendFrom time.Time
	trendTo   time.Time
	metrics   []dashboard.EmployeeMetric

	payrollFromMonth int
	payrollFromYear  int
	payrollToMonth   int
	payrollToYear    int
}

func (f *fakeDashboardRepo) EmployeeStats(_ context.Context, _ time.Time) (*dashboard.EmployeeStats, error) {
	return &dashboard.EmployeeStats{Total: 3, Active: 2}, nil
}

func (f *fakeDashboardRepo) AttendanceToday(_ context.Context, _ time.Time) (*dashboard.AttendanceToday, error) {
	return &dashboard.AttendanceToday{Present: 2}, nil
}

func (f *fakeDashboardRepo) PayrollSnapshot(_ context.Context, month, year int) (*dashboard.PayrollSnapshot, error) {
	return &dashboard.PayrollSnapshot{Month: month, Year: year}, nil
}

func (f *fakeDashboardRepo) DepartmentShares(_ context.Context) ([]dashboard.DepartmentShare, error) {
	return []dashboard.DepartmentShare{{Department: "Engineering", Count: 2}}, nil
}

func (f *fakeDashboardRepo) RecentHires(_ context.Context, _ int) ([]dashboard.RecentHire, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) AttendanceTrends(_ context.Context, from, to time.Time) ([]dashboard.TrendPoint, error) {
	f.trendFrom = from
	f.trendTo = to
	return []dashboard.TrendPoint{}, nil
}

func (f *fakeDashboardRepo) EmployeeMetrics(_ context.Context, _, _ time.Time) ([]dashboard.EmployeeMetric, error) {
	return f.metrics, nil
}

func (f *fakeDashboardRepo) PayrollTrends(_ context.Context, fromMonth, fromYear, toMonth, toYear int) ([]dashboard.PayrollMonthPoint, error) {
	f.payrollFromMonth = fromMonth
	f.payrollFromYear = fromYear
	f.payrollToMonth = toMonth
	f.payrollToYear = toYear
	return []dashboard.PayrollMonthPoint{{Month: toMonth, Year: toYear, EmployeeCount: 2}}, nil
}

func (f *fakeDashboardRepo) DepartmentPayroll(_ context.Context, _, _ int) ([]dashboard.DepartmentPayroll, error) {
	return []dashboard.DepartmentPayroll{{Department: "Engineering", EmployeeCount: 2}}, nil
}

// fakeEmployeeRepo serves GetByID only; the dashboard never touches the
// other employee operations.
type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, _ *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, _ string) (*employee.Employee, error) {
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (*employee.Employee, error) {
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) SetStatus(_ context.Context, _ string, _ employee.Status) error {
	return nil
}

func (f *fakeEmployeeRepo) NextCode(_ context.Context) (string, error) { return "EMP0001", nil }

func (f *fakeEmployeeRepo) ManagerAssignments(_ context.Context) (map[string]string, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) StatsOverview(_ context.Context) (*employee.StatsOverviewResponse, error) {
	return &employee.StatsOverviewResponse{}, nil
}

type fakeAttendanceRepo struct {
	today   *attendance.Attendance
	summary *attendance.MonthlySummary
	recent  []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, _ *attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (*attendance.Attendance, error) {
	return nil, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	if f.today == nil {
		return nil, attendance.ErrAttendanceNotFound
	}
	return f.today, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return f.recent, int64(len(f.recent)), nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ *attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) MonthlySummary(_ context.Context, employeeID string, month, year int) (*attendance.MonthlySummary, error) {
	if f.summary != nil {
		return f.summary, nil
	}
	return &attendance.MonthlySummary{EmployeeID: employeeID, Month: month, Year: year}, nil
}

func (f *fakeAttendanceRepo) Report(_ context.Context, _, _ time.Time, _ *string) ([]attendance.ReportRow, error) {
	return nil, nil
}

type fakePayrollRepo struct {
	current *payroll.Payroll
}

func (f *fakePayrollRepo) Create(_ context.Context, _ *payroll.Payroll) error { return nil }

func (f *fakePayrollRepo) GetByID(_ context.Context, _ string) (*payroll.Payroll, error) {
	return nil, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) GetByEmployeeAndPeriod(_ context.Context, _ string, _, _ int) (*payroll.Payroll, error) {
	if f.current == nil {
		return nil, payroll.ErrPayrollNotFound
	}
	return f.current, nil
}

func (f *fakePayrollRepo) List(_ context.Context, _ payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	return nil, 0, nil
}

func (f *fakePayrollRepo) Update(_ context.Context, _ *payroll.Payroll) error { return nil }

func (f *fakePayrollRepo) SummaryStats(_ context.Context, month, year int) (*payroll.SummaryStats, error) {
	return &payroll.SummaryStats{Month: month, Year: year}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testRepos struct {
	dashboard  *fakeDashboardRepo
	employee   *fakeEmployeeRepo
	attendance *fakeAttendanceRepo
	payroll    *fakePayrollRepo
}

func newTestService() (dashboard.DashboardService, *testRepos) {
	repos := &testRepos{
		dashboard:  &fakeDashboardRepo{},
		employee:   &fakeEmployeeRepo{employees: make(map[string]*employee.Employee)},
		attendance: &fakeAttendanceRepo{},
		payroll:    &fakePayrollRepo{},
	}
	svc := NewDashboardService(repos.dashboard, repos.employee, repos.attendance, repos.payroll, testLogger())
	return svc, repos
}

func TestOverviewCollectsAllSections(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Employees.Total)
	assert.Equal(t, int64(2), resp.Attendance.Present)
	assert.Len(t, resp.Departments, 1)
}

func TestAttendanceTrendsClampsWindow(t *testing.T) {
	svc, repos := newTestService()

	_, err := svc.AttendanceTrends(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 6*24*time.Hour, repos.dashboard.trendTo.Sub(repos.dashboard.trendFrom))

	_, err = svc.AttendanceTrends(context.Background(), 365)
	require.NoError(t, err)
	assert.Equal(t, 89*24*time.Hour, repos.dashboard.trendTo.Sub(repos.dashboard.trendFrom))
}

func TestEmployeeMetricsComputesRate(t *testing.T) {
	// March 2025 starts on a Saturday and has 21 weekdays.
	svc, repos := newTestService()
	repos.dashboard.metrics = []dashboard.EmployeeMetric{
		{EmployeeID: "a", PresentDays: 21},
		{EmployeeID: "b", PresentDays: 14},
		{EmployeeID: "c", PresentDays: 0},
	}

	metrics, err := svc.EmployeeMetrics(context.Background(), 3, 2025)
	require.NoError(t, err)
	require.Len(t, metrics, 3)
	assert.InDelta(t, 100.0, metrics[0].AttendanceRate, 1e-9)
	assert.InDelta(t, 66.67, metrics[1].AttendanceRate, 1e-9)
	assert.Zero(t, metrics[2].AttendanceRate)
}

func TestWeekdaysBetween(t *testing.T) {
	// Monday through Sunday.
	from := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, weekdaysBetween(from, from.AddDate(0, 0, 6)))
	assert.Equal(t, 1, weekdaysBetween(from, from))
}

func TestPayrollAnalyticsClampsWindow(t *testing.T) {
	svc, repos := newTestService()

	resp, err := svc.PayrollAnalytics(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Months)

	resp, err = svc.PayrollAnalytics(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Months)

	// A 12-month window ending this month starts 11 months back.
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	assert.Equal(t, int(start.Month()), repos.dashboard.payrollFromMonth)
	assert.Equal(t, start.Year(), repos.dashboard.payrollFromYear)
	assert.Equal(t, int(now.Month()), repos.dashboard.payrollToMonth)
	assert.Equal(t, now.Year(), repos.dashboard.payrollToYear)

	require.Len(t, resp.MonthlyTrends, 1)
	require.Len(t, resp.DepartmentBreakdown, 1)
	assert.Equal(t, "Engineering", resp.DepartmentBreakdown[0].Department)
}

func TestMySummaryAssemblesSections(t *testing.T) {
	svc, repos := newTestService()

	const empID = "9c1f4a7b-2d63-48e0-b5a9-6f8d0c3e1a24"
	repos.employee.employees[empID] = &employee.Employee{
		ID:         empID,
		Code:       "EMP0042",
		FirstName:  "Dana",
		LastName:   "Reyes",
		Department: employee.Department("Engineering"),
		Position:   "Engineer",
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	clockIn := today.Add(9 * time.Hour)
	repos.attendance.today = &attendance.Attendance{
		ID:          "att-1",
		EmployeeID:  empID,
		Date:        today,
		ClockInTime: &clockIn,
		Status:      attendance.StatusPresent,
	}
	repos.attendance.summary = &attendance.MonthlySummary{
		EmployeeID:  empID,
		PresentDays: 10,
		LateDays:    2,
	}
	repos.attendance.recent = []attendance.Attendance{
		{ID: "att-1", EmployeeID: empID, Date: today},
		{ID: "att-2", EmployeeID: empID, Date: today.AddDate(0, 0, -1)},
	}
	repos.payroll.current = &payroll.Payroll{
		ID:         "pay-1",
		EmployeeID: empID,
		Month:      int(now.Month()),
		Year:       now.Year(),
		Status:     payroll.StatusDraft,
	}

	resp, err := svc.MySummary(context.Background(), empID)
	require.NoError(t, err)

	assert.Equal(t, "EMP0042", resp.Employee.Code)
	assert.Equal(t, "Dana Reyes", resp.Employee.Name)
	require.NotNil(t, resp.TodayAttendance)
	assert.Equal(t, "att-1", resp.TodayAttendance.ID)
	assert.Equal(t, 10, resp.MonthlySummary.PresentDays)
	require.NotNil(t, resp.CurrentPayroll)
	assert.Equal(t, "pay-1", resp.CurrentPayroll.ID)
	assert.Len(t, resp.RecentAttendance, 2)
}

func TestMySummaryToleratesMissingRecords(t *testing.T) {
	svc, repos := newTestService()

	const empID = "9c1f4a7b-2d63-48e0-b5a9-6f8d0c3e1a24"
	repos.employee.employees[empID] = &employee.Employee{
		ID: empID, Code: "EMP0042", FirstName: "Dana", LastName: "Reyes",
	}

	resp, err := svc.MySummary(context.Background(), empID)
	require.NoError(t, err)
	assert.Nil(t, resp.TodayAttendance)
	assert.Nil(t, resp.CurrentPayroll)
	assert.Empty(t, resp.RecentAttendance)
}

func TestMySummaryUnknownEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.MySummary(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
