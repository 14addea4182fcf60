package employee

import "time"

// Employee is the roster entry the payroll engine iterates over. Employee
// records are maintained elsewhere; this module only reads them.
type Employee struct {
	ID        string
	UserID    *string
	FirstName string
	LastName  string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
