package payrate

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHoursPerDay applies when an employee has no pay rate configured.
var DefaultHoursPerDay = decimal.NewFromInt(8)

// PayRate holds an employee's compensation terms. HR administration owns
// these rows; the payroll engine only reads them.
type PayRate struct {
	ID          string
	EmployeeID  string
	PayRate     decimal.Decimal // currency per hour
	HoursPerDay decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DailyRate is PayRate × HoursPerDay.
func (p PayRate) DailyRate() decimal.Decimal {
	return p.PayRate.Mul(p.HoursPerDay)
}
