package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// LockEmployee serialises submissions of one employee until the
	// surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error

	// CountStartingInMonth counts the employee's requests whose start date
	// falls in the calendar month of monthStart.
	CountStartingInMonth(ctx context.Context, employeeID string, monthStart time.Time) (int, error)

	// List returns requests newest first. An empty employeeID lists everyone.
	List(ctx context.Context, employeeID string) ([]LeaveRequest, error)
}
