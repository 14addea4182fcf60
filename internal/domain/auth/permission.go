package auth

import "fmt"

type Capability string

const (
	// Payroll
	CapPayrollGenerate Capability = "payroll.generate"
	CapPayrollViewOwn  Capability = "payroll.view_own"
	CapPayrollViewAll  Capability = "payroll.view_all"

	// Time ledger
	CapAttendanceRecord  Capability = "attendance.record"
	CapAttendanceViewOwn Capability = "attendance.view_own"

	// Leave
	CapLeaveCreate  Capability = "leave.create"
	CapLeaveViewAll Capability = "leave.view_all"

	// Reference data
	CapHolidayView    Capability = "holiday.view"
	CapPayRateViewOwn Capability = "payrate.view_own"
)

// RoleCapabilities maps roles to their capabilities
var RoleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapPayrollGenerate,
		CapPayrollViewOwn,
		CapPayrollViewAll,
		CapAttendanceRecord,
		CapAttendanceViewOwn,
		CapLeaveCreate,
		CapLeaveViewAll,
		CapHolidayView,
		CapPayRateViewOwn,
	},
	RoleEmployee: {
		CapPayrollViewOwn,
		CapAttendanceRecord,
		CapAttendanceViewOwn,
		CapLeaveCreate,
		CapHolidayView,
		CapPayRateViewOwn,
	},
}

// Guard decides whether a principal may exercise a capability.
type Guard interface {
	Require(p Principal, capability Capability) error
	Allows(p Principal, capability Capability) bool
}

// RoleGuard grants capabilities from a static role table.
type RoleGuard struct {
	capabilities map[Role]map[Capability]struct{}
}

func NewRoleGuard(table map[Role][]Capability) *RoleGuard {
	g := &RoleGuard{capabilities: make(map[Role]map[Capability]struct{}, len(table))}
	for role, caps := range table {
		set := make(map[Capability]struct{}, len(caps))
		for _, c := range caps {
			set[c] = struct{}{}
		}
		g.capabilities[role] = set
	}
	return g
}

// DefaultGuard uses RoleCapabilities.
func DefaultGuard() *RoleGuard {
	return NewRoleGuard(RoleCapabilities)
}

func (g *RoleGuard) Allows(p Principal, capability Capability) bool {
	set, ok := g.capabilities[p.Role]
	if !ok {
		return false
	}
	_, ok = set[capability]
	return ok
}

func (g *RoleGuard) Require(p Principal, capability Capability) error {
	if !g.Allows(p, capability) {
		return fmt.Errorf("%w: required '%s', role is '%s'", ErrForbidden, capability, p.Role)
	}
	return nil
}
