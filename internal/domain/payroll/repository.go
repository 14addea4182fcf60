package payroll

import "context"

// PayrollRepository defines data access methods for payroll records and
// their deduction rows.
type PayrollRepository interface {
	// Upsert inserts or replaces the payroll for (EmployeeID, PayPeriod).
	// created reports whether a new row was inserted.
	Upsert(ctx context.Context, p Payroll) (saved Payroll, created bool, err error)

	// ReplaceDeductions deletes every deduction of payrollID and inserts rows.
	ReplaceDeductions(ctx context.Context, payrollID string, rows []Deduction) error

	// List returns payrolls matching filter, newest period first.
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, error)

	// GetDeductions returns the deduction rows of the given payrolls keyed by payroll ID.
	GetDeductions(ctx context.Context, payrollIDs []string) (map[string][]Deduction, error)
}
