package holiday

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
)

type ListHolidaysRequest struct {
	Year int `json:"year"`
}

func (r *ListHolidaysRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "must be between 1 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckHolidayRequest struct {
	Date string `json:"date"`
}

func (r *CheckHolidayRequest) Validate() (time.Time, error) {
	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "must be a date in YYYY-MM-DD format",
		}}
	}
	return date, nil
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type CheckHolidayResponse struct {
	Date      string `json:"date"`
	IsHoliday bool   `json:"is_holiday"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
	}
}
