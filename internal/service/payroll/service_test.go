package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
	"github.com/hrstack/hrms-backend-go/internal/pkg/payslip"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePayrollRepo struct {
	records map[string]*payroll.Payroll // employeeID-month-year
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]*payroll.Payroll)}
}

func periodKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s-%d-%d", employeeID, month, year)
}

func (f *fakePayrollRepo) Create(_ context.Context, p *payroll.Payroll) error {
	key := periodKey(p.EmployeeID, p.Month, p.Year)
	if _, ok := f.records[key]; ok {
		return payroll.ErrPayrollExists
	}
	p.ID = key
	f.records[key] = p
	return nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (*payroll.Payroll, error) {
	for _, p := range f.records {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	if p, ok := f.records[periodKey(employeeID, month, year)]; ok {
		return p, nil
	}
	return nil, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) List(_ context.Context, _ payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	out := make([]payroll.Payroll, 0, len(f.records))
	for _, p := range f.records {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) Update(_ context.Context, p *payroll.Payroll) error {
	f.records[periodKey(p.EmployeeID, p.Month, p.Year)] = p
	return nil
}

func (f *fakePayrollRepo) SummaryStats(_ context.Context, month, year int) (*payroll.SummaryStats, error) {
	byStatus := make(map[payroll.Status]payroll.StatusSummary)
	for _, p := range f.records {
		if p.Month != month || p.Year != year {
			continue
		}
		s := byStatus[p.Status]
		s.Status = p.Status
		s.Count++
		s.TotalNet = s.TotalNet.Add(p.NetSalary)
		byStatus[p.Status] = s
	}

	stats := &payroll.SummaryStats{
		Month:    month,
		Year:     year,
		Statuses: make([]payroll.StatusSummary, 0, len(byStatus)),
	}
	for _, s := range byStatus {
		stats.Statuses = append(stats.Statuses, s)
	}
	return stats, nil
}

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

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	out := make([]employee.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		if filter.Status != nil && string(e.Status) != *filter.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) SetStatus(_ context.Context, _ string, _ employee.Status) error {
	return nil
}

func (f *fakeEmployeeRepo) NextCode(_ context.Context) (string, error) { return "EMP0001", nil }

func (f *fakeEmployeeRepo) ManagerAssignments(_ context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func (f *fakeEmployeeRepo) StatsOverview(_ context.Context) (*employee.StatsOverviewResponse, error) {
	return &employee.StatsOverviewResponse{}, nil
}

type fakeAttendanceRepo struct {
	summaries map[string]*attendance.MonthlySummary
}

func (f *fakeAttendanceRepo) Create(_ context.Context, _ *attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (*attendance.Attendance, error) {
	return nil, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ *attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) MonthlySummary(_ context.Context, employeeID string, month, year int) (*attendance.MonthlySummary, error) {
	if s, ok := f.summaries[employeeID]; ok {
		return s, nil
	}
	return &attendance.MonthlySummary{EmployeeID: employeeID, Month: month, Year: year}, nil
}

func (f *fakeAttendanceRepo) Report(_ context.Context, _, _ time.Time, _ *string) ([]attendance.ReportRow, error) {
	return nil, nil
}

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) Upload(_ context.Context, _ io.Reader, path string, _ string) (string, error) {
	return path, nil
}
func (f *fakeStorage) Download(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("not stored")
}
func (f *fakeStorage) Delete(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}
func (f *fakeStorage) Exists(_ context.Context, _ string) (bool, error) { return false, nil }

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newTestService(employees map[string]*employee.Employee, summaries map[string]*attendance.MonthlySummary) (payroll.PayrollService, *fakePayrollRepo) {
	payrollRepo := newFakePayrollRepo()
	svc := NewPayrollService(
		payrollRepo,
		&fakeEmployeeRepo{employees: employees},
		&fakeAttendanceRepo{summaries: summaries},
		payslip.NewGenerator("Test Co"),
		&fakeStorage{},
		testLogger(),
	)
	return svc, payrollRepo
}

func activeEmployee(id string, basic, allowances string) *employee.Employee {
	return &employee.Employee{
		ID:             id,
		Code:           "EMP" + id,
		FirstName:      "Test",
		LastName:       id,
		BasicSalary:    d(basic),
		Allowances:     d(allowances),
		SalaryCurrency: "USD",
		Status:         employee.StatusActive,
	}
}

func TestGenerateComputesPayFromAttendance(t *testing.T) {
	employees := map[string]*employee.Employee{
		"alpha-0001": activeEmployee("alpha-0001", "4800", "200"),
	}
	summaries := map[string]*attendance.MonthlySummary{
		"alpha-0001": {
			PresentDays:   20,
			LateDays:      1,
			HalfDays:      1,
			OvertimeHours: 10,
		},
	}
	svc, _ := newTestService(employees, summaries)

	result, err := svc.Generate(context.Background(), &payroll.GenerateRequest{Month: 3, Year: 2025})
	require.NoError(t, err)
	require.Len(t, result.Generated, 1)
	assert.Empty(t, result.Errors)

	p := result.Generated[0]
	// 4800 over 240 base hours is 20/hour; 10 overtime hours at 1.5x is 300.
	assert.True(t, p.Earnings.Overtime.Equal(d("300")), "overtime = %s", p.Earnings.Overtime)
	assert.True(t, p.Earnings.Total.Equal(d("5300")), "gross = %s", p.Earnings.Total)
	assert.True(t, p.Deductions.Tax.Equal(d("795")), "tax = %s", p.Deductions.Tax)
	assert.True(t, p.Deductions.SocialSecurity.Equal(d("328.60")), "social security = %s", p.Deductions.SocialSecurity)
	assert.True(t, p.Deductions.HealthInsurance.Equal(d("265")), "health = %s", p.Deductions.HealthInsurance)
	assert.True(t, p.NetSalary.Equal(d("3911.40")), "net = %s", p.NetSalary)

	assert.Equal(t, 22, p.WorkingDays)
	assert.Equal(t, 22, p.PresentDays)
	assert.Equal(t, string(payroll.StatusDraft), p.Status)
	assert.Equal(t, "PAY2025030001", p.PayslipNumber)
}

func TestGenerateSkipsExistingPeriods(t *testing.T) {
	employees := map[string]*employee.Employee{
		"alpha-0001": activeEmployee("alpha-0001", "4800", "0"),
		"beta-0002":  activeEmployee("beta-0002", "3600", "0"),
	}
	svc, repo := newTestService(employees, nil)

	first, err := svc.Generate(context.Background(), &payroll.GenerateRequest{Month: 1, Year: 2025})
	require.NoError(t, err)
	assert.Len(t, first.Generated, 2)

	// Re-running must not duplicate or overwrite anything.
	second, err := svc.Generate(context.Background(), &payroll.GenerateRequest{Month: 1, Year: 2025})
	require.NoError(t, err)
	assert.Empty(t, second.Generated)
	assert.Len(t, second.Errors, 2)
	assert.Len(t, repo.records, 2)
}

func TestGenerateCollectsPerEmployeeErrors(t *testing.T) {
	employees := map[string]*employee.Employee{
		"alpha-0001": activeEmployee("alpha-0001", "4800", "0"),
		"beta-0002":  activeEmployee("beta-0002", "3600", "0"),
	}
	svc, repo := newTestService(employees, nil)

	// beta already has a record for the period.
	require.NoError(t, repo.Create(context.Background(), &payroll.Payroll{
		EmployeeID: "beta-0002", Month: 2, Year: 2025, Status: payroll.StatusDraft,
	}))

	result, err := svc.Generate(context.Background(), &payroll.GenerateRequest{Month: 2, Year: 2025})
	require.NoError(t, err)

	require.Len(t, result.Generated, 1)
	assert.Equal(t, "alpha-0001", result.Generated[0].EmployeeID)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "beta-0002", result.Errors[0].EmployeeID)
}

func TestUpdateStatusTransitions(t *testing.T) {
	employees := map[string]*employee.Employee{
		"alpha-0001": activeEmployee("alpha-0001", "4800", "0"),
	}
	svc, _ := newTestService(employees, nil)

	result, err := svc.Generate(context.Background(), &payroll.GenerateRequest{Month: 4, Year: 2025})
	require.NoError(t, err)
	require.Len(t, result.Generated, 1)
	id := result.Generated[0].ID

	p, err := svc.UpdateStatus(context.Background(), "hr-user", &payroll.UpdateStatusRequest{
		ID: id, Status: string(payroll.StatusProcessed),
	})
	require.NoError(t, err)
	require.NotNil(t, p.ProcessedAt)
	require.NotNil(t, p.ProcessedBy)
	assert.Equal(t, "hr-user", *p.ProcessedBy)
	processedAt := *p.ProcessedAt

	p, err = svc.UpdateStatus(context.Background(), "hr-user", &payroll.UpdateStatusRequest{
		ID: id, Status: string(payroll.StatusPaid),
	})
	require.NoError(t, err)
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, processedAt, *p.ProcessedAt)

	// Paid is terminal.
	_, err = svc.UpdateStatus(context.Background(), "hr-user", &payroll.UpdateStatusRequest{
		ID: id, Status: string(payroll.StatusDraft),
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestCancelDropsStoredPayslip(t *testing.T) {
	employees := map[string]*employee.Employee{
		"alpha-0001": activeEmployee("alpha-0001", "4800", "0"),
	}
	files := &fakeStorage{}
	svc := NewPayrollService(
		newFakePayrollRepo(),
		&fakeEmployeeRepo{employees: employees},
		&fakeAttendanceRepo{},
		payslip.NewGenerator("Test Co"),
		files,
		testLogger(),
	)

	result, err := svc.Generate(context.Background(), &payroll.GenerateRequest{Month: 4, Year: 2025})
	require.NoError(t, err)
	require.Len(t, result.Generated, 1)
	generated := result.Generated[0]

	_, err = svc.UpdateStatus(context.Background(), "hr-user", &payroll.UpdateStatusRequest{
		ID: generated.ID, Status: string(payroll.StatusCancelled),
	})
	require.NoError(t, err)

	expected := fmt.Sprintf("payslips/2025/04/%s.pdf", generated.PayslipNumber)
	assert.Equal(t, []string{expected}, files.deleted)
}

func TestGenerateRejectsInvalidPeriod(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	_, err := svc.Generate(context.Background(), &payroll.GenerateRequest{Month: 13, Year: 2025})
	assert.Error(t, err)
}

func TestSummaryStatsAggregatesByStatus(t *testing.T) {
	employees := map[string]*employee.Employee{
		"alpha-0001": activeEmployee("alpha-0001", "4800", "0"),
		"beta-0002":  activeEmployee("beta-0002", "3600", "0"),
	}
	svc, _ := newTestService(employees, nil)

	result, err := svc.Generate(context.Background(), &payroll.GenerateRequest{Month: 5, Year: 2025})
	require.NoError(t, err)
	require.Len(t, result.Generated, 2)

	_, err = svc.UpdateStatus(context.Background(), "hr-user", &payroll.UpdateStatusRequest{
		ID: result.Generated[0].ID, Status: string(payroll.StatusProcessed),
	})
	require.NoError(t, err)

	stats, err := svc.SummaryStats(context.Background(), 5, 2025)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Month)
	assert.Equal(t, 2025, stats.Year)

	counts := make(map[payroll.Status]int64)
	for _, s := range stats.Statuses {
		counts[s.Status] = s.Count
	}
	assert.Equal(t, int64(1), counts[payroll.StatusDraft])
	assert.Equal(t, int64(1), counts[payroll.StatusProcessed])
}

func TestSummaryStatsRejectsInvalidPeriod(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	_, err := svc.SummaryStats(context.Background(), 0, 2025)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
