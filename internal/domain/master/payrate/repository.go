package payrate

import "context"

type PayRateRepository interface {
	// GetLatestByEmployeeID returns the most recently created pay rate of the
	// employee, or ErrPayRateNotFound.
	GetLatestByEmployeeID(ctx context.Context, employeeID string) (PayRate, error)

	// ListByEmployeeID returns all pay rates of the employee, newest first.
	ListByEmployeeID(ctx context.Context, employeeID string) ([]PayRate, error)
}
