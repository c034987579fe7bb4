package attendance

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance // employeeID + date
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "@" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a *attendance.Attendance) error {
	key := recordKey(a.EmployeeID, a.Date)
	if _, ok := f.records[key]; ok {
		return attendance.ErrRecordExists
	}
	f.nextID++
	a.ID = key
	f.records[key] = a
	return nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (*attendance.Attendance, error) {
	for _, a := range f.records {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if a, ok := f.records[recordKey(employeeID, date)]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	out := make([]attendance.Attendance, 0, len(f.records))
	for _, a := range f.records {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a *attendance.Attendance) error {
	key := recordKey(a.EmployeeID, a.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	copied := *a
	f.records[key] = &copied
	return nil
}

func (f *fakeAttendanceRepo) MonthlySummary(_ context.Context, employeeID string, month, year int) (*attendance.MonthlySummary, error) {
	s := &attendance.MonthlySummary{EmployeeID: employeeID, Month: month, Year: year}
	for _, a := range f.records {
		if a.EmployeeID != employeeID || int(a.Date.Month()) != month || a.Date.Year() != year {
			continue
		}
		switch a.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		case attendance.StatusLate:
			s.LateDays++
		case attendance.StatusHalfDay:
			s.HalfDays++
		case attendance.StatusLeave:
			s.LeaveDays++
		case attendance.StatusHoliday:
			s.HolidayDays++
		}
		s.WorkingHours += a.WorkingHours
		s.OvertimeHours += a.OvertimeHours
	}
	return s, nil
}

func (f *fakeAttendanceRepo) Report(_ context.Context, from, to time.Time, department *string) ([]attendance.ReportRow, error) {
	byEmployee := make(map[string]*attendance.ReportRow)
	for _, a := range f.records {
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		row, ok := byEmployee[a.EmployeeID]
		if !ok {
			row = &attendance.ReportRow{EmployeeID: a.EmployeeID}
			byEmployee[a.EmployeeID] = row
		}
		row.TotalDays++
		switch a.Status {
		case attendance.StatusPresent, attendance.StatusLate:
			row.PresentDays++
		case attendance.StatusAbsent:
			row.AbsentDays++
		}
		if a.Status == attendance.StatusLate {
			row.LateDays++
		}
		row.WorkingHours += a.WorkingHours
		row.OvertimeHours += a.OvertimeHours
	}

	rows := make([]attendance.ReportRow, 0, len(byEmployee))
	for _, row := range byEmployee {
		rows = append(rows, *row)
	}
	return rows, nil
}

type fakeEmployeeRepo struct {
	ids map[string]bool
}

func (f *fakeEmployeeRepo) Create(_ context.Context, _ *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*employee.Employee, error) {
	if f.ids[id] {
		return &employee.Employee{ID: id, Status: employee.StatusActive}, nil
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
	return map[string]string{}, nil
}

func (f *fakeEmployeeRepo) StatsOverview(_ context.Context) (*employee.StatsOverviewResponse, error) {
	return &employee.StatsOverviewResponse{}, nil
}

const empID = "5f0c2d6e-8a41-4b2f-9c7d-3e1a6b8f0412"

func newTestService() (attendance.AttendanceService, *fakeAttendanceRepo) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, &fakeEmployeeRepo{ids: map[string]bool{empID: true}}, testLogger())
	return svc, repo
}

func TestClockInCreatesTodayRecord(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.ClockIn(context.Background(), empID, &attendance.ClockInRequest{Notes: "morning"})
	require.NoError(t, err)
	require.NotNil(t, a.ClockInTime)
	assert.Nil(t, a.ClockOutTime)
	assert.Equal(t, "morning", a.Notes)
	assert.False(t, a.Manual)
	assert.Contains(t, []attendance.Status{attendance.StatusPresent, attendance.StatusLate}, a.Status)
}

func TestClockLocationsArePersisted(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.ClockIn(context.Background(), empID, &attendance.ClockInRequest{Location: "HQ lobby"})
	require.NoError(t, err)
	assert.Equal(t, "HQ lobby", a.ClockInLocation)
	assert.Empty(t, a.ClockOutLocation)

	a, err = svc.ClockOut(context.Background(), empID, &attendance.ClockOutRequest{Location: "home office"})
	require.NoError(t, err)
	assert.Equal(t, "HQ lobby", a.ClockInLocation)
	assert.Equal(t, "home office", a.ClockOutLocation)

	stored := repo.records[recordKey(empID, a.Date)]
	assert.Equal(t, "HQ lobby", stored.ClockInLocation)
	assert.Equal(t, "home office", stored.ClockOutLocation)
}

func TestClockInTwiceFails(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ClockIn(context.Background(), empID, &attendance.ClockInRequest{})
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), empID, &attendance.ClockInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockInUnknownEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ClockIn(context.Background(), "11111111-2222-4333-8444-555566667777", &attendance.ClockInRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ClockOut(context.Background(), empID, &attendance.ClockOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockOutComputesHoursAndClosesOpenBreak(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.ClockIn(context.Background(), empID, &attendance.ClockInRequest{})
	require.NoError(t, err)

	_, err = svc.StartBreak(context.Background(), empID)
	require.NoError(t, err)

	a, err := svc.ClockOut(context.Background(), empID, &attendance.ClockOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, a.ClockOutTime)
	require.Len(t, a.Breaks, 1)
	assert.NotNil(t, a.Breaks[0].End, "open break should be closed by clock-out")

	_, err = svc.ClockOut(context.Background(), empID, &attendance.ClockOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

	stored := repo.records[recordKey(empID, a.Date)]
	assert.Equal(t, a.WorkingHours, stored.WorkingHours)
}

func TestBreakLifecycle(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.StartBreak(context.Background(), empID)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = svc.ClockIn(context.Background(), empID, &attendance.ClockInRequest{})
	require.NoError(t, err)

	_, err = svc.EndBreak(context.Background(), empID)
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)

	_, err = svc.StartBreak(context.Background(), empID)
	require.NoError(t, err)

	_, err = svc.StartBreak(context.Background(), empID)
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)

	a, err := svc.EndBreak(context.Background(), empID)
	require.NoError(t, err)
	require.Len(t, a.Breaks, 1)
	assert.NotNil(t, a.Breaks[0].End)
}

func TestManualMarkSurvivesClockEvents(t *testing.T) {
	svc, _ := newTestService()

	today := time.Now().UTC().Format("2006-01-02")
	marked, err := svc.Mark(context.Background(), &attendance.MarkRequest{
		EmployeeID: empID,
		Date:       today,
		Status:     string(attendance.StatusHoliday),
		Notes:      "company holiday",
	})
	require.NoError(t, err)
	assert.True(t, marked.Manual)

	// Clock events on a marked day record timestamps but keep the status.
	a, err := svc.ClockIn(context.Background(), empID, &attendance.ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHoliday, a.Status)

	a, err = svc.ClockOut(context.Background(), empID, &attendance.ClockOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHoliday, a.Status)
	require.NotNil(t, a.ClockOutTime)
}

func TestMarkValidatesInput(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Mark(context.Background(), &attendance.MarkRequest{
		EmployeeID: empID,
		Date:       "2025-03-10",
		Status:     "vacationing",
	})
	assert.Error(t, err)
}

func TestTodayWithoutRecord(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Today(context.Background(), empID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestReportRejectsInvertedRange(t *testing.T) {
	svc, _ := newTestService()

	from := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Report(context.Background(), from, to, nil)
	assert.Error(t, err)
}

func TestReportRollsUpRange(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Mark(context.Background(), &attendance.MarkRequest{
		EmployeeID: empID, Date: "2025-03-10", Status: "late",
	})
	require.NoError(t, err)
	_, err = svc.Mark(context.Background(), &attendance.MarkRequest{
		EmployeeID: empID, Date: "2025-03-11", Status: "absent",
	})
	require.NoError(t, err)

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	report, err := svc.Report(context.Background(), from, to, nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", report.From)
	assert.Equal(t, "All Departments", report.Department)
	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, 2, row.TotalDays)
	assert.Equal(t, 1, row.PresentDays)
	assert.Equal(t, 1, row.LateDays)
	assert.Equal(t, 1, row.AbsentDays)
}
