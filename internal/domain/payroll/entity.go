package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Statutory deduction rates, applied to gross salary.
var (
	TaxRate    = decimal.RequireFromString("0.15")
	HealthRate = decimal.RequireFromString("0.05")
	SocialRate = decimal.RequireFromString("0.02")
)

// Deduction labels, in the order the rows are stored.
const (
	LabelTax      = "Tax 15%"
	LabelHealth   = "PhilHealth 5%"
	LabelSocial   = "SSS 2%"
	LabelAbsences = "Absences"
)

// MoneyPlaces is the scale every persisted amount is rounded to.
const MoneyPlaces = 2

// Period is a calendar month, keyed by its first day.
type Period struct {
	Year  int
	Month time.Month
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Start is the first day of the period at midnight UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the period at midnight UTC.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Days is the number of calendar days in the period (28-31).
func (p Period) Days() int {
	return p.End().Day()
}

// Previous returns the month before p.
func (p Period) Previous() Period {
	return PeriodOf(p.Start().AddDate(0, -1, 0))
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

type Payroll struct {
	ID              string
	EmployeeID      string
	PayPeriod       time.Time
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	Deductions   []Deduction
}

// Deduction is one line of a payroll's deduction breakdown. It has no
// identity outside its payroll.
type Deduction struct {
	ID              string
	PayrollID       string
	Position        int
	Label           string
	SalaryDeduction decimal.Decimal
}

// Computation is the full result of the payroll arithmetic for one
// employee and period.
type Computation struct {
	EmployeeID      string
	Period          Period
	TotalDays       int
	DaysWorked      int
	AbsentDays      int
	TotalHours      decimal.Decimal
	PayRate         decimal.Decimal
	HoursPerDay     decimal.Decimal
	DailyRate       decimal.Decimal
	GrossSalary     decimal.Decimal
	Tax             decimal.Decimal
	Health          decimal.Decimal
	Social          decimal.Decimal
	AbsentDeduction decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	MissingPayRate  bool
}

// Deductions returns the four breakdown rows in storage order.
func (c Computation) Deductions() []Deduction {
	return []Deduction{
		{Position: 1, Label: LabelTax, SalaryDeduction: c.Tax},
		{Position: 2, Label: LabelHealth, SalaryDeduction: c.Health},
		{Position: 3, Label: LabelSocial, SalaryDeduction: c.Social},
		{Position: 4, Label: LabelAbsences, SalaryDeduction: c.AbsentDeduction},
	}
}

// Payroll returns the record to upsert for this computation.
func (c Computation) Payroll() Payroll {
	return Payroll{
		EmployeeID:      c.EmployeeID,
		PayPeriod:       c.Period.Start(),
		GrossSalary:     c.GrossSalary,
		TotalDeductions: c.TotalDeductions,
		NetSalary:       c.NetSalary,
	}
}

type WarningKind string

const (
	WarningConfiguration WarningKind = "configuration"
	WarningSkipped       WarningKind = "skipped"
)

// Warning is a non-fatal problem recorded during a batch run.
type Warning struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	Kind         WarningKind `json:"kind"`
	Message      string      `json:"message"`
}
