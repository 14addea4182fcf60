package payrate

import "github.com/shopspring/decimal"

type PayRateResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	PayRate     decimal.Decimal `json:"pay_rate"`
	HoursPerDay decimal.Decimal `json:"hours_per_day"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	CreatedAt   string          `json:"created_at"`
}

func ToResponse(p PayRate) PayRateResponse {
	return PayRateResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		PayRate:     p.PayRate,
		HoursPerDay: p.HoursPerDay,
		DailyRate:   p.DailyRate(),
		CreatedAt:   p.CreatedAt.Format("2006-01-02"),
	}
}
