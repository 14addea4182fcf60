package payroll

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Validate checks the requested period and returns it.
func (r *GeneratePayrollRequest) Validate() (Period, error) {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1 and 9999"})
	}

	if len(errs) > 0 {
		return Period{}, errs
	}
	return Period{Year: r.Year, Month: time.Month(r.Month)}, nil
}

// GenerateSummary reports the outcome of one batch run.
type GenerateSummary struct {
	RunID      string          `json:"run_id"`
	Period     string          `json:"period"`
	Generated  int             `json:"generated"`
	Created    int             `json:"created"`
	Updated    int             `json:"updated"`
	TotalHours decimal.Decimal `json:"total_hours"`
	Warnings   []Warning       `json:"warnings"`
}

type ViewPayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      *int   `json:"month"`
	Year       *int   `json:"year"`
}

// PayrollFilter narrows a payroll listing. A nil Month matches the whole
// Year; a nil Year matches every period.
type PayrollFilter struct {
	EmployeeID string
	Year       *int
	Month      *int
}

func (r *ViewPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if r.Month != nil {
		if *r.Month < 1 || *r.Month > 12 {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
		}
		if r.Year == nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "is required when month is given"})
		}
	}
	if r.Year != nil && (*r.Year < 1 || *r.Year > 9999) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1 and 9999"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeductionResponse struct {
	Position        int             `json:"position"`
	Label           string          `json:"label"`
	SalaryDeduction decimal.Decimal `json:"salary_deduction"`
}

type PayrollResponse struct {
	ID              string              `json:"id"`
	EmployeeID      string              `json:"employee_id"`
	EmployeeName    *string             `json:"employee_name,omitempty"`
	PayPeriod       string              `json:"pay_period"`
	Month           int                 `json:"month"`
	Year            int                 `json:"year"`
	GrossSalary     decimal.Decimal     `json:"gross_salary"`
	TotalDeductions decimal.Decimal     `json:"total_deductions"`
	NetSalary       decimal.Decimal     `json:"net_salary"`
	Deductions      []DeductionResponse `json:"deductions"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func ToResponse(p Payroll) PayrollResponse {
	deductions := make([]DeductionResponse, 0, len(p.Deductions))
	for _, d := range p.Deductions {
		deductions = append(deductions, DeductionResponse{
			Position:        d.Position,
			Label:           d.Label,
			SalaryDeduction: d.SalaryDeduction,
		})
	}

	return PayrollResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		PayPeriod:       p.PayPeriod.Format("2006-01-02"),
		Month:           int(p.PayPeriod.Month()),
		Year:            p.PayPeriod.Year(),
		GrossSalary:     p.GrossSalary,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.NetSalary,
		Deductions:      deductions,
		UpdatedAt:       p.UpdatedAt,
	}
}
