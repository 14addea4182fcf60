package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
)

type PayrollJobs struct {
	payrollService payroll.PayrollService
	loc            *time.Location
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService, loc *time.Location) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_previous_month_payroll", 1*time.Hour, j.GeneratePreviousMonth)
}

// GeneratePreviousMonth closes the previous month's payroll. It only acts
// during hour 0 of the first day of a month in the payroll timezone.
func (j *PayrollJobs) GeneratePreviousMonth(ctx context.Context) error {
	now := j.now().In(j.loc)
	if now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	period := payroll.PeriodOf(now).Previous()
	slog.Info("Cron: Generating payroll", "period", period.String())

	summary, err := j.payrollService.Generate(ctx, auth.SystemPrincipal(), payroll.GeneratePayrollRequest{
		Month: int(period.Month),
		Year:  period.Year,
	})
	if err != nil {
		return err
	}

	for _, w := range summary.Warnings {
		slog.Warn("Cron: Payroll warning", "run_id", summary.RunID, "employee_id", w.EmployeeID, "kind", w.Kind, "message", w.Message)
	}
	slog.Info("Cron: Payroll generated", "run_id", summary.RunID, "period", summary.Period, "generated", summary.Generated, "warnings", len(summary.Warnings))
	return nil
}
