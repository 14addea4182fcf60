package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActive returns the roster at call time, ordered by name.
	ListActive(ctx context.Context) ([]Employee, error)
}
