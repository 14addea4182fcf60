package auth

import "context"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administration: payroll runs, all records
	RoleEmployee Role = "employee" // Regular employee: own records only
)

// Principal is the authenticated caller of an operation. Services receive it
// as an explicit argument and check it against a Guard.
type Principal struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// HasEmployee reports whether the principal is linked to an employee record.
func (p Principal) HasEmployee() bool {
	return p.EmployeeID != ""
}

// SystemPrincipal is used by the scheduler and the admin CLI.
func SystemPrincipal() Principal {
	return Principal{UserID: "system", Role: RoleAdmin}
}

type principalKey struct{}

// WithPrincipal stores p in ctx. Only the HTTP middleware uses this; services
// take the principal as a parameter.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok {
		return Principal{}, ErrMissingPrincipal
	}
	return p, nil
}
