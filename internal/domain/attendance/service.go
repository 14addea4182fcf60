package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
)

// AttendanceService defines the time ledger operations
type AttendanceService interface {
	// RecordPunch records a time-in or time-out for the caller's current date
	RecordPunch(ctx context.Context, principal auth.Principal, req RecordPunchRequest) (AttendanceResponse, error)

	// HoursFor returns an employee's records within r; it feeds the payroll engine
	HoursFor(ctx context.Context, employeeID string, r DateRange) ([]AttendanceRecord, error)

	// ListMine returns the caller's own daily time records
	ListMine(ctx context.Context, principal auth.Principal, req ListMyAttendanceRequest) ([]AttendanceResponse, error)
}
