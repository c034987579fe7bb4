package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyClockedIn   = errors.New("already clocked in for today")
	ErrNotClockedIn       = errors.New("not clocked in yet")
	ErrAlreadyClockedOut  = errors.New("already clocked out for today")
	ErrBreakAlreadyOpen   = errors.New("a break is already in progress")
	ErrNoOpenBreak        = errors.New("no break in progress")
	ErrRecordExists       = errors.New("attendance record already exists for this date")
)
