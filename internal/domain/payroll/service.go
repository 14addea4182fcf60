package payroll

import (
	"context"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
)

type PayrollService interface {
	// Generate computes and stores payroll for every employee for one period
	Generate(ctx context.Context, principal auth.Principal, req GeneratePayrollRequest) (GenerateSummary, error)

	// ViewPayroll returns payroll history of one employee, optionally for a single period
	ViewPayroll(ctx context.Context, principal auth.Principal, req ViewPayrollRequest) ([]PayrollResponse, error)
}
