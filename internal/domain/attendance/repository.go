package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the persistence side of the time ledger.
type AttendanceRepository interface {
	// GetOrCreateForUpdate returns the record for (employeeID, date), creating
	// an empty one if needed, and locks the row until the surrounding
	// transaction ends.
	GetOrCreateForUpdate(ctx context.Context, employeeID string, date time.Time) (AttendanceRecord, error)

	// UpdatePunches persists TimeIn, TimeOut and TotalHours of rec.
	UpdatePunches(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// ListByEmployeeAndRange returns records with from <= date <= to ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceRecord, error)
}
