package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/payrate"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollRepository_UpsertReplacesDeductions(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empID := setup.createEmployee(t, "Maria", "Santos")

	repo := postgresql.NewPayrollRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	p := payroll.Payroll{
		EmployeeID:      empID,
		PayPeriod:       time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		GrossSalary:     decimal.RequireFromString("2000.00"),
		TotalDeductions: decimal.RequireFromString("6240.00"),
		NetSalary:       decimal.RequireFromString("-4240.00"),
	}
	rows := []payroll.Deduction{
		{Position: 1, Label: payroll.LabelTax, SalaryDeduction: decimal.RequireFromString("300.00")},
		{Position: 2, Label: payroll.LabelHealth, SalaryDeduction: decimal.RequireFromString("100.00")},
		{Position: 3, Label: payroll.LabelSocial, SalaryDeduction: decimal.RequireFromString("40.00")},
		{Position: 4, Label: payroll.LabelAbsences, SalaryDeduction: decimal.RequireFromString("5800.00")},
	}

	var firstID string
	for i := 0; i < 2; i++ {
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			saved, created, err := repo.Upsert(ctx, p)
			if err != nil {
				return err
			}
			assert.Equal(t, i == 0, created)
			if i == 0 {
				firstID = saved.ID
			} else {
				assert.Equal(t, firstID, saved.ID)
			}
			return repo.ReplaceDeductions(ctx, saved.ID, rows)
		})
		require.NoError(t, err)
	}

	year := 2024
	list, err := repo.List(ctx, payroll.PayrollFilter{EmployeeID: empID, Year: &year})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, p.NetSalary.Equal(list[0].NetSalary))
	require.NotNil(t, list[0].EmployeeName)
	assert.Equal(t, "Maria Santos", *list[0].EmployeeName)

	deductions, err := repo.GetDeductions(ctx, []string{firstID})
	require.NoError(t, err)
	require.Len(t, deductions[firstID], 4)
	assert.Equal(t, payroll.LabelAbsences, deductions[firstID][3].Label)
}

func TestAttendanceRepository_GetOrCreateForUpdate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empID := setup.createEmployee(t, "Jose", "Rizal")

	repo := postgresql.NewAttendanceRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)
	date := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	var recordID string
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := repo.GetOrCreateForUpdate(ctx, empID, date)
		if err != nil {
			return err
		}
		recordID = rec.ID
		in := time.Date(2024, time.March, 4, 1, 0, 0, 0, time.UTC)
		rec.TimeIn = &in
		_, err = repo.UpdatePunches(ctx, rec)
		return err
	})
	require.NoError(t, err)

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := repo.GetOrCreateForUpdate(ctx, empID, date)
		if err != nil {
			return err
		}
		assert.Equal(t, recordID, rec.ID)
		assert.True(t, rec.HasTimeIn())
		assert.False(t, rec.HasTimeOut())
		return nil
	})
	require.NoError(t, err)

	records, err := repo.ListByEmployeeAndRange(ctx, empID, date.AddDate(0, 0, -3), date)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestPayRateRepository_LatestWins(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empID := setup.createEmployee(t, "Ana", "Cruz")

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO pay_rates (employee_id, pay_rate, hours_per_day, created_at)
		VALUES ($1, 100, 8, NOW() - INTERVAL '1 day'), ($1, 125, 8, NOW())
	`, empID)
	require.NoError(t, err)

	repo := postgresql.NewPayRateRepository(setup.DB)

	rate, err := repo.GetLatestByEmployeeID(ctx, empID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(125).Equal(rate.PayRate))

	_, err = repo.GetLatestByEmployeeID(ctx, setup.createEmployee(t, "No", "Rate"))
	assert.ErrorIs(t, err, payrate.ErrPayRateNotFound)
}

func TestLeaveRequestRepository_CountStartingInMonth(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empID := setup.createEmployee(t, "Lea", "Salonga")

	repo := postgresql.NewLeaveRequestRepository(setup.DB)
	starts := []time.Time{
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, s := range starts {
		_, err := repo.Create(ctx, leave.LeaveRequest{
			EmployeeID: empID,
			StartDate:  s,
			EndDate:    s,
			Reason:     "personal",
			Status:     leave.LeaveRequestStatusPending,
		})
		require.NoError(t, err)
	}

	count, err := repo.CountStartingInMonth(ctx, empID, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHolidayRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	_, err := setup.DB.Exec(ctx, `INSERT INTO holidays (date, description) VALUES ('2024-12-25', 'Christmas Day')`)
	require.NoError(t, err)

	repo := postgresql.NewHolidayRepository(setup.DB)

	ok, err := repo.ExistsOnDate(ctx, time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsOnDate(ctx, time.Date(2024, time.December, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := repo.ListBetween(ctx,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Christmas Day", list[0].Description)
}

func TestRepositories_UnknownEmployee(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	missing := "00000000-0000-0000-0000-000000000001"
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	_, err := postgresql.NewLeaveRequestRepository(setup.DB).Create(ctx, leave.LeaveRequest{
		EmployeeID: missing,
		StartDate:  day,
		EndDate:    day,
		Reason:     "personal",
		Status:     leave.LeaveRequestStatusPending,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, _, err = postgresql.NewPayrollRepository(setup.DB).Upsert(ctx, payroll.Payroll{
		EmployeeID: missing,
		PayPeriod:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_ConcurrentPunchesSerialize(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empID := setup.createEmployee(t, "Andres", "Bonifacio")

	repo := postgresql.NewAttendanceRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	in := time.Date(2024, time.March, 5, 1, 0, 0, 0, time.UTC)
	out := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

	punch := func(set func(rec *attendance.AttendanceRecord)) error {
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			rec, err := repo.GetOrCreateForUpdate(ctx, empID, date)
			if err != nil {
				return err
			}
			set(&rec)
			// keep the row lock long enough for the other punch to queue on it
			time.Sleep(50 * time.Millisecond)
			_, err = repo.UpdatePunches(ctx, rec)
			return err
		})
	}

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, set := range []func(rec *attendance.AttendanceRecord){
		func(rec *attendance.AttendanceRecord) { rec.TimeIn = &in },
		func(rec *attendance.AttendanceRecord) { rec.TimeOut = &out },
	} {
		set := set
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- punch(set)
		}()
	}
	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	records, err := repo.ListByEmployeeAndRange(ctx, empID, date, date)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].HasTimeIn(), "time in lost")
	assert.True(t, records[0].HasTimeOut(), "time out lost")
}

func TestPayrollRepository_FailedReplaceRollsBackPayroll(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	empID := setup.createEmployee(t, "Gabriela", "Silang")

	repo := postgresql.NewPayrollRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)
	errAfterWrite := errors.New("write failed after deductions")

	var payrollID string
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		saved, _, err := repo.Upsert(ctx, payroll.Payroll{
			EmployeeID:      empID,
			PayPeriod:       time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			GrossSalary:     decimal.RequireFromString("1000.00"),
			TotalDeductions: decimal.RequireFromString("220.00"),
			NetSalary:       decimal.RequireFromString("780.00"),
		})
		if err != nil {
			return err
		}
		payrollID = saved.ID
		if err := repo.ReplaceDeductions(ctx, saved.ID, []payroll.Deduction{
			{Position: 1, Label: payroll.LabelTax, SalaryDeduction: decimal.RequireFromString("150.00")},
			{Position: 2, Label: payroll.LabelHealth, SalaryDeduction: decimal.RequireFromString("50.00")},
			{Position: 3, Label: payroll.LabelSocial, SalaryDeduction: decimal.RequireFromString("20.00")},
			{Position: 4, Label: payroll.LabelAbsences, SalaryDeduction: decimal.Zero},
		}); err != nil {
			return err
		}
		return errAfterWrite
	})
	require.ErrorIs(t, err, errAfterWrite)
	require.NotEmpty(t, payrollID)

	list, err := repo.List(ctx, payroll.PayrollFilter{EmployeeID: empID})
	require.NoError(t, err)
	assert.Empty(t, list)

	deductions, err := repo.GetDeductions(ctx, []string{payrollID})
	require.NoError(t, err)
	assert.Empty(t, deductions[payrollID])
}
