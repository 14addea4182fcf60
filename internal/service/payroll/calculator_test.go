package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/payrate"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feb2024 = payroll.Period{Year: 2024, Month: time.February}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

// records returns one complete 8-hour record for each date.
func records(dates ...time.Time) []attendance.AttendanceRecord {
	out := make([]attendance.AttendanceRecord, 0, len(dates))
	for _, d := range dates {
		in := d.Add(8 * time.Hour)
		outAt := d.Add(16 * time.Hour)
		hours := attendance.ComputeTotalHours(in, outAt)
		out = append(out, attendance.AttendanceRecord{Date: d, TimeIn: &in, TimeOut: &outAt, TotalHours: &hours})
	}
	return out
}

func firstDays(p payroll.Period, n int) []time.Time {
	var out []time.Time
	for i := 0; i < n; i++ {
		out = append(out, p.Start().AddDate(0, 0, i))
	}
	return out
}

func rate(perHour string) *payrate.PayRate {
	return &payrate.PayRate{PayRate: dec(perHour), HoursPerDay: dec("8")}
}

func TestCompute_February2024Example(t *testing.T) {
	c := Calculator{CountWeekendsAsAbsent: true}

	got := c.Compute(Input{
		EmployeeID: "e-1",
		Period:     feb2024,
		Records:    records(firstDays(feb2024, 20)...),
		Rate:       rate("100"),
	})

	assert.Equal(t, 29, got.TotalDays)
	assert.Equal(t, 20, got.DaysWorked)
	assert.Equal(t, 9, got.AbsentDays)
	assert.False(t, got.MissingPayRate)
	assertDecimal(t, "160", got.TotalHours, "total_hours")
	assertDecimal(t, "800", got.DailyRate, "daily_rate")
	assertDecimal(t, "16000", got.GrossSalary, "gross")
	assertDecimal(t, "2400", got.Tax, "tax")
	assertDecimal(t, "800", got.Health, "health")
	assertDecimal(t, "320", got.Social, "social")
	assertDecimal(t, "7200", got.AbsentDeduction, "absent")
	assertDecimal(t, "10720", got.TotalDeductions, "total_deductions")
	assertDecimal(t, "5280", got.NetSalary, "net")
}

func TestCompute_NoPayRate(t *testing.T) {
	c := Calculator{CountWeekendsAsAbsent: true}

	got := c.Compute(Input{Period: feb2024, Records: records(firstDays(feb2024, 5)...)})

	assert.True(t, got.MissingPayRate)
	assert.Equal(t, 5, got.DaysWorked)
	assertDecimal(t, "8", got.HoursPerDay, "hours_per_day")
	for field, v := range map[string]decimal.Decimal{
		"gross": got.GrossSalary, "tax": got.Tax, "health": got.Health, "social": got.Social,
		"absent": got.AbsentDeduction, "total": got.TotalDeductions, "net": got.NetSalary,
	} {
		assertDecimal(t, "0", v, field)
	}
}

func TestCompute_ZeroAttendance(t *testing.T) {
	c := Calculator{CountWeekendsAsAbsent: true}

	got := c.Compute(Input{Period: feb2024, Rate: rate("100")})

	assert.Equal(t, 0, got.DaysWorked)
	assert.Equal(t, 29, got.AbsentDays)
	assertDecimal(t, "0", got.GrossSalary, "gross")
	assertDecimal(t, "23200", got.TotalDeductions, "total_deductions")
	assertDecimal(t, "-23200", got.NetSalary, "net")
}

func TestCompute_DaysAddUpToMonth(t *testing.T) {
	c := Calculator{CountWeekendsAsAbsent: true}

	for _, p := range []payroll.Period{
		{Year: 2023, Month: time.February},
		{Year: 2024, Month: time.February},
		{Year: 2024, Month: time.April},
		{Year: 2024, Month: time.December},
	} {
		for _, worked := range []int{0, 1, 15, p.Days()} {
			got := c.Compute(Input{Period: p, Records: records(firstDays(p, worked)...), Rate: rate("57.35")})
			assert.Equal(t, got.TotalDays, got.DaysWorked+got.AbsentDays, "%s worked=%d", p, worked)
		}
	}
}

func TestCompute_DeductionsReconcile(t *testing.T) {
	c := Calculator{CountWeekendsAsAbsent: true}

	got := c.Compute(Input{Period: feb2024, Records: records(firstDays(feb2024, 13)...), Rate: rate("123.457")})

	sum := decimal.Zero
	rows := got.Deductions()
	require.Len(t, rows, 4)
	for _, d := range rows {
		assert.True(t, d.SalaryDeduction.Equal(d.SalaryDeduction.Round(2)), d.Label)
		sum = sum.Add(d.SalaryDeduction)
	}
	assert.True(t, sum.Equal(got.TotalDeductions))
	assert.True(t, got.GrossSalary.Sub(sum).Equal(got.NetSalary))

	assert.Equal(t, payroll.LabelTax, rows[0].Label)
	assert.Equal(t, payroll.LabelHealth, rows[1].Label)
	assert.Equal(t, payroll.LabelSocial, rows[2].Label)
	assert.Equal(t, payroll.LabelAbsences, rows[3].Label)
}

func TestCompute_DuplicateAndOutOfPeriodRecords(t *testing.T) {
	c := Calculator{CountWeekendsAsAbsent: true}
	day := feb2024.Start()

	in := append(records(day), records(day)...)
	in = append(in, records(feb2024.Start().AddDate(0, 1, 0))...)
	halfDay := attendance.AttendanceRecord{Date: day.AddDate(0, 0, 1), TimeIn: &day}
	in = append(in, halfDay)

	got := c.Compute(Input{Period: feb2024, Records: in, Rate: rate("100")})

	assert.Equal(t, 2, got.DaysWorked)
	assertDecimal(t, "16", got.TotalHours, "total_hours")
}

func TestCompute_WeekdaysOnlyAbsence(t *testing.T) {
	c := Calculator{CountWeekendsAsAbsent: false}

	var weekdays []time.Time
	for d := feb2024.Start(); !d.After(feb2024.End()); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			weekdays = append(weekdays, d)
		}
	}
	require.Len(t, weekdays, 21)

	got := c.Compute(Input{Period: feb2024, Records: records(weekdays[:20]...), Rate: rate("100")})

	assert.Equal(t, 20, got.DaysWorked)
	assert.Equal(t, 1, got.AbsentDays)
	assertDecimal(t, "800", got.AbsentDeduction, "absent")
}
