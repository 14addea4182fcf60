package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type PunchKind string

const (
	PunchTimeIn  PunchKind = "time_in"
	PunchTimeOut PunchKind = "time_out"
)

// AttendanceRecord is one employee's punches for one calendar date.
// TotalHours stays nil until both punches exist.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	TimeIn     *time.Time
	TimeOut    *time.Time
	TotalHours *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r AttendanceRecord) HasTimeIn() bool  { return r.TimeIn != nil }
func (r AttendanceRecord) HasTimeOut() bool { return r.TimeOut != nil }

// Hours returns TotalHours, or zero when it has not been derived yet.
func (r AttendanceRecord) Hours() decimal.Decimal {
	if r.TotalHours == nil {
		return decimal.Zero
	}
	return *r.TotalHours
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the calendar date of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(r.From)) && !d.After(DateOf(r.To))
}

// DateOf truncates t to midnight UTC of its calendar date in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
