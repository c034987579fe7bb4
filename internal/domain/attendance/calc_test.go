package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min, sec, nsec int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, sec, nsec, time.UTC)
}

func TestWorkingHours(t *testing.T) {
	in := at(9, 0, 0, 0)
	out := at(18, 30, 0, 0)
	lunchEnd := at(13, 0, 0, 0)
	lunch := BreakPeriod{Start: at(12, 0, 0, 0), End: &lunchEnd}

	tests := []struct {
		name     string
		clockIn  *time.Time
		clockOut *time.Time
		breaks   []BreakPeriod
		want     float64
	}{
		{"no clock in", nil, &out, nil, 0},
		{"no clock out", &in, nil, nil, 0},
		{"full day with lunch", &in, &out, []BreakPeriod{lunch}, 8.5},
		{"full day no breaks", &in, &out, nil, 9.5},
		{"open break ignored", &in, &out, []BreakPeriod{{Start: at(12, 0, 0, 0)}}, 9.5},
		{"clock out before clock in", &out, &in, nil, 0},
		{"breaks exceed span", &in, ptr(at(9, 30, 0, 0)), []BreakPeriod{lunch}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WorkingHours(tt.clockIn, tt.clockOut, tt.breaks), 1e-9)
		})
	}
}

func TestWorkingHoursClampedToOneDay(t *testing.T) {
	in := at(9, 0, 0, 0)
	out := in.Add(30 * time.Hour)
	assert.Equal(t, MaxDailyHours, WorkingHours(&in, &out, nil))
}

func TestIsLate(t *testing.T) {
	tests := []struct {
		name    string
		clockIn *time.Time
		want    bool
	}{
		{"nil clock in", nil, false},
		{"exactly nine", ptr(at(9, 0, 0, 0)), false},
		{"one millisecond past nine", ptr(at(9, 0, 0, int(time.Millisecond))), true},
		{"well before nine", ptr(at(8, 15, 0, 0)), false},
		{"mid morning", ptr(at(10, 45, 0, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLate(tt.clockIn))
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	lunchEnd := at(13, 0, 0, 0)
	lunch := BreakPeriod{Start: at(12, 0, 0, 0), End: &lunchEnd}

	tests := []struct {
		name     string
		clockIn  *time.Time
		clockOut *time.Time
		breaks   []BreakPeriod
		want     Status
	}{
		{"on time full day", ptr(at(9, 0, 0, 0)), ptr(at(18, 30, 0, 0)), []BreakPeriod{lunch}, StatusPresent},
		{"on time still working", ptr(at(8, 45, 0, 0)), nil, nil, StatusPresent},
		{"late arrival", ptr(at(9, 30, 0, 0)), ptr(at(18, 0, 0, 0)), nil, StatusLate},
		{"short day", ptr(at(9, 0, 0, 0)), ptr(at(12, 0, 0, 0)), nil, StatusHalfDay},
		{"late beats short day", ptr(at(11, 0, 0, 0)), ptr(at(13, 0, 0, 0)), nil, StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.clockIn, tt.clockOut, tt.breaks))
		})
	}
}

func TestOvertimeHours(t *testing.T) {
	assert.Equal(t, 0.0, OvertimeHours(7.5))
	assert.Equal(t, 0.0, OvertimeHours(8))
	assert.InDelta(t, 0.5, OvertimeHours(8.5), 1e-9)
	assert.InDelta(t, 2.25, OvertimeHours(10.25), 1e-9)
}

func ptr(t time.Time) *time.Time { return &t }
