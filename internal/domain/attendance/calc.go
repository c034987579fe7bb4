package attendance

import (
	"math"
	"time"
)

const (
	// StandardWorkdayHours is the daily baseline above which time counts
	// as overtime.
	StandardWorkdayHours = 8.0

	// HalfDayThresholdHours marks a completed day shorter than this as
	// half-day.
	HalfDayThresholdHours = 4.0

	// MaxDailyHours caps a single record. Anything above it is a data
	// entry mistake, not a real shift.
	MaxDailyHours = 24.0
)

// Workday starts at 09:00 local time. A clock-in strictly after that is late.
const (
	workdayStartHour   = 9
	workdayStartMinute = 0
)

// WorkingHours computes the net hours between clock-in and clock-out with
// completed breaks subtracted, rounded to two decimals. It returns 0 when
// either timestamp is missing or the span comes out negative, and never
// exceeds MaxDailyHours.
func WorkingHours(clockIn, clockOut *time.Time, breaks []BreakPeriod) float64 {
	if clockIn == nil || clockOut == nil {
		return 0
	}

	minutes := clockOut.Sub(*clockIn).Minutes() - BreakMinutes(breaks)
	if minutes < 0 {
		minutes = 0
	}

	hours := round2(minutes / 60)
	if hours > MaxDailyHours {
		return MaxDailyHours
	}
	return hours
}

// BreakMinutes totals the durations of completed breaks. Open breaks do
// not count until they are ended.
func BreakMinutes(breaks []BreakPeriod) float64 {
	var total float64
	for _, b := range breaks {
		if b.End == nil {
			continue
		}
		if d := b.End.Sub(b.Start).Minutes(); d > 0 {
			total += d
		}
	}
	return total
}

// IsLate reports whether clockIn falls strictly after 09:00:00 on its own
// day. Exactly 09:00:00 is on time.
func IsLate(clockIn *time.Time) bool {
	if clockIn == nil {
		return false
	}
	start := time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(),
		workdayStartHour, workdayStartMinute, 0, 0, clockIn.Location())
	return clockIn.After(start)
}

// DeriveStatus applies the precedence late > half-day > present to a record
// from its raw timestamps. It is only meaningful for records built from
// clock events; manually marked records keep their assigned status.
func DeriveStatus(clockIn, clockOut *time.Time, breaks []BreakPeriod) Status {
	if IsLate(clockIn) {
		return StatusLate
	}
	if clockOut != nil {
		if wh := WorkingHours(clockIn, clockOut, breaks); wh < HalfDayThresholdHours {
			return StatusHalfDay
		}
	}
	return StatusPresent
}

// OvertimeHours is the portion of a day beyond the standard workday,
// never negative.
func OvertimeHours(workingHours float64) float64 {
	if workingHours <= StandardWorkdayHours {
		return 0
	}
	return round2(workingHours - StandardWorkdayHours)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
