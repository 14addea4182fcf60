package leave

import "time"

// MaxRequestsPerMonth caps the leave requests an employee may file whose
// start date falls in one calendar month.
const MaxRequestsPerMonth = 3

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     LeaveRequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// Days returns the inclusive number of calendar days the request covers.
func (l LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
