package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// ComputeTotalHours returns out-in in hours rounded to 2 decimal places.
// A time-out earlier than the time-in yields zero.
func ComputeTotalHours(in, out time.Time) decimal.Decimal {
	if !out.After(in) {
		return decimal.Zero
	}
	seconds := decimal.NewFromInt(int64(out.Sub(in) / time.Second))
	return seconds.Div(secondsPerHour).Round(2)
}

// Summary aggregates a set of attendance records.
type Summary struct {
	DaysWorked int
	TotalHours decimal.Decimal
	Dates      map[time.Time]struct{}
}

// Worked reports whether the summary contains a record for the date of t.
func (s Summary) Worked(t time.Time) bool {
	_, ok := s.Dates[DateOf(t)]
	return ok
}

// Summarize counts distinct dates and sums hours. A record counts as a
// worked day even when only the time-in has been punched.
func Summarize(records []AttendanceRecord) Summary {
	s := Summary{
		TotalHours: decimal.Zero,
		Dates:      make(map[time.Time]struct{}, len(records)),
	}
	for _, r := range records {
		s.Dates[DateOf(r.Date)] = struct{}{}
		s.TotalHours = s.TotalHours.Add(r.Hours())
	}
	s.DaysWorked = len(s.Dates)
	return s
}
