package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordPunchRequest struct {
	Kind string `json:"kind"`
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	switch PunchKind(r.Kind) {
	case PunchTimeIn, PunchTimeOut:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "must be 'time_in' or 'time_out'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListMyAttendanceRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Validate checks the range and returns it parsed.
func (r *ListMyAttendanceRequest) Validate() (DateRange, error) {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a date in YYYY-MM-DD format"})
	}
	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a date in YYYY-MM-DD format"})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must not be before from"})
	}

	if len(errs) > 0 {
		return DateRange{}, errs
	}
	return DateRange{From: from, To: to}, nil
}

type AttendanceResponse struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	TimeIn     *string          `json:"time_in,omitempty"`
	TimeOut    *string          `json:"time_out,omitempty"`
	TotalHours *decimal.Decimal `json:"total_hours,omitempty"`
}

// ToResponse renders punch times as local wall-clock times in loc.
func ToResponse(r AttendanceRecord, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.Format("2006-01-02"),
		TimeIn:     clockString(r.TimeIn, loc),
		TimeOut:    clockString(r.TimeOut, loc),
		TotalHours: r.TotalHours,
	}
}

func clockString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format("03:04 PM")
	return &s
}
