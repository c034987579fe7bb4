package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusHoliday Status = "holiday"
	StatusLeave   Status = "leave"
)

var Statuses = []string{
	string(StatusPresent), string(StatusAbsent), string(StatusLate),
	string(StatusHalfDay), string(StatusHoliday), string(StatusLeave),
}

// BreakPeriod is one pause inside a working day. End is nil while the
// break is still open.
type BreakPeriod struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // midnight, date component only

	ClockInTime      *time.Time
	ClockOutTime     *time.Time
	ClockInLocation  string
	ClockOutLocation string
	Breaks           []BreakPeriod

	WorkingHours  float64
	OvertimeHours float64
	Status        Status

	// Manual marks come from an administrator and are never overwritten
	// by the derived status on later clock events.
	Manual bool

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields
	EmployeeName *string
	EmployeeCode *string
}

// HasOpenBreak reports whether the last break has not been ended yet.
func (a *Attendance) HasOpenBreak() bool {
	n := len(a.Breaks)
	return n > 0 && a.Breaks[n-1].End == nil
}
