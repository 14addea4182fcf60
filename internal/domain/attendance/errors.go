package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyTimedIn   = errors.New("time in already recorded for today")
	ErrNotTimedIn       = errors.New("you need to time in first")
	ErrAlreadyTimedOut  = errors.New("time out already recorded for today")
	ErrHolidayPunch     = errors.New("attendance cannot be recorded on a holiday")
	ErrInvalidPunchKind = errors.New("punch kind must be time_in or time_out")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
