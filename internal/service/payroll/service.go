package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/payrate"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// TimeLedger supplies attendance records for an employee.
type TimeLedger interface {
	HoursFor(ctx context.Context, employeeID string, r attendance.DateRange) ([]attendance.AttendanceRecord, error)
}

// RateCatalog supplies the current pay rate for an employee, nil when none.
type RateCatalog interface {
	RateFor(ctx context.Context, employeeID string) (*payrate.PayRate, error)
}

type Options struct {
	Workers               int
	CountWeekendsAsAbsent bool
}

type PayrollServiceImpl struct {
	tx           database.Transactor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	ledger       TimeLedger
	rates        RateCatalog
	guard        auth.Guard
	calc         Calculator
	workers      int
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	ledger TimeLedger,
	rates RateCatalog,
	guard auth.Guard,
	opts Options,
) payroll.PayrollService {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		ledger:       ledger,
		rates:        rates,
		guard:        guard,
		calc:         Calculator{CountWeekendsAsAbsent: opts.CountWeekendsAsAbsent},
		workers:      workers,
	}
}

// employeeResult is the outcome of one employee's run.
type employeeResult struct {
	created    bool
	totalHours decimal.Decimal
	warnings   []payroll.Warning
	failed     bool
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, principal auth.Principal, req payroll.GeneratePayrollRequest) (payroll.GenerateSummary, error) {
	if err := s.guard.Require(principal, auth.CapPayrollGenerate); err != nil {
		return payroll.GenerateSummary{}, err
	}

	period, err := req.Validate()
	if err != nil {
		return payroll.GenerateSummary{}, err
	}

	summary := payroll.GenerateSummary{
		RunID:      uuid.NewString(),
		Period:     period.String(),
		TotalHours: decimal.Zero,
		Warnings:   []payroll.Warning{},
	}
	logger := slog.With("run_id", summary.RunID, "period", summary.Period)

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.GenerateSummary{}, fmt.Errorf("failed to load employees: %w", err)
	}

	logger.Info("Payroll generation started", "employees", len(employees), "workers", s.workers, "requested_by", principal.UserID)
	started := time.Now()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.workers)

	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			res := s.generateForEmployee(ctx, logger, emp, period)

			mu.Lock()
			defer mu.Unlock()
			summary.Warnings = append(summary.Warnings, res.warnings...)
			if res.failed {
				return nil
			}
			summary.Generated++
			if res.created {
				summary.Created++
			} else {
				summary.Updated++
			}
			summary.TotalHours = summary.TotalHours.Add(res.totalHours)
			return nil
		})
	}
	// Per-employee errors are reported as warnings, never returned.
	_ = g.Wait()

	sort.SliceStable(summary.Warnings, func(i, j int) bool {
		a, b := summary.Warnings[i], summary.Warnings[j]
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		return a.EmployeeID < b.EmployeeID
	})

	logger.Info("Payroll generation finished",
		"generated", summary.Generated,
		"created", summary.Created,
		"updated", summary.Updated,
		"warnings", len(summary.Warnings),
		"total_hours", summary.TotalHours.String(),
		"duration", time.Since(started),
	)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("payroll generation interrupted: %w", err)
	}
	return summary, nil
}

func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, logger *slog.Logger, emp employee.Employee, period payroll.Period) employeeResult {
	res := employeeResult{totalHours: decimal.Zero}
	name := emp.FullName()

	skip := func(err error) employeeResult {
		logger.Warn("Skipped employee", "employee_id", emp.ID, "error", err)
		res.failed = true
		res.warnings = append(res.warnings, payroll.Warning{
			EmployeeID:   emp.ID,
			EmployeeName: name,
			Kind:         payroll.WarningSkipped,
			Message:      err.Error(),
		})
		return res
	}

	if err := ctx.Err(); err != nil {
		return skip(err)
	}

	records, err := s.ledger.HoursFor(ctx, emp.ID, attendance.DateRange{From: period.Start(), To: period.End()})
	if err != nil {
		return skip(err)
	}

	rate, err := s.rates.RateFor(ctx, emp.ID)
	if err != nil {
		return skip(fmt.Errorf("failed to load pay rate: %w", err))
	}

	comp := s.calc.Compute(Input{EmployeeID: emp.ID, Period: period, Records: records, Rate: rate})
	if comp.MissingPayRate {
		logger.Warn("No pay rate configured, using zero rate", "employee_id", emp.ID)
		res.warnings = append(res.warnings, payroll.Warning{
			EmployeeID:   emp.ID,
			EmployeeName: name,
			Kind:         payroll.WarningConfiguration,
			Message:      payroll.ErrMissingPayRate.Error(),
		})
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		saved, created, err := s.payrollRepo.Upsert(ctx, comp.Payroll())
		if err != nil {
			return err
		}
		res.created = created
		return s.payrollRepo.ReplaceDeductions(ctx, saved.ID, comp.Deductions())
	})
	if err != nil {
		return skip(err)
	}

	logger.Debug("Generated payroll",
		"employee_id", emp.ID,
		"days_worked", comp.DaysWorked,
		"absent_days", comp.AbsentDays,
		"gross", comp.GrossSalary.String(),
		"net", comp.NetSalary.String(),
	)

	res.totalHours = comp.TotalHours
	return res
}

// ViewPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ViewPayroll(ctx context.Context, principal auth.Principal, req payroll.ViewPayrollRequest) ([]payroll.PayrollResponse, error) {
	if err := s.guard.Require(principal, auth.CapPayrollViewOwn); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employeeID := req.EmployeeID
	switch {
	case employeeID == "" && principal.HasEmployee():
		employeeID = principal.EmployeeID
	case employeeID == "":
		// Unlinked callers may only list everyone.
		if err := s.guard.Require(principal, auth.CapPayrollViewAll); err != nil {
			return nil, auth.ErrNoEmployeeLinked
		}
	case employeeID != principal.EmployeeID:
		if err := s.guard.Require(principal, auth.CapPayrollViewAll); err != nil {
			return nil, err
		}
	}

	if employeeID != "" {
		if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
			return nil, err
		}
	}

	payrolls, err := s.payrollRepo.List(ctx, payroll.PayrollFilter{
		EmployeeID: employeeID,
		Year:       req.Year,
		Month:      req.Month,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(payrolls))
	for _, p := range payrolls {
		ids = append(ids, p.ID)
	}
	deductions, err := s.payrollRepo.GetDeductions(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		p.Deductions = deductions[p.ID]
		responses = append(responses, payroll.ToResponse(p))
	}
	return responses, nil
}
