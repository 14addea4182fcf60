package payroll

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/payrate"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Input is everything the calculator needs for one employee and period.
type Input struct {
	EmployeeID string
	Period     payroll.Period
	Records    []attendance.AttendanceRecord
	Rate       *payrate.PayRate // nil when the employee has no pay rate
}

// Calculator turns attendance and pay rate into payroll figures. It performs
// no I/O.
type Calculator struct {
	// CountWeekendsAsAbsent counts every unworked calendar day as an absence.
	// When false only unworked Monday-Friday dates count.
	CountWeekendsAsAbsent bool
}

func (c Calculator) Compute(in Input) payroll.Computation {
	summary := attendance.Summarize(recordsInPeriod(in.Records, in.Period))

	out := payroll.Computation{
		EmployeeID:  in.EmployeeID,
		Period:      in.Period,
		TotalDays:   in.Period.Days(),
		DaysWorked:  summary.DaysWorked,
		TotalHours:  summary.TotalHours,
		PayRate:     decimal.Zero,
		HoursPerDay: payrate.DefaultHoursPerDay,
	}
	if in.Rate == nil {
		out.MissingPayRate = true
	} else {
		out.PayRate = in.Rate.PayRate
		out.HoursPerDay = in.Rate.HoursPerDay
	}

	if c.CountWeekendsAsAbsent {
		out.AbsentDays = out.TotalDays - out.DaysWorked
	} else {
		out.AbsentDays = weekdaysNotWorked(in.Period, summary)
	}

	out.DailyRate = out.PayRate.Mul(out.HoursPerDay)
	out.GrossSalary = money(decimal.NewFromInt(int64(out.DaysWorked)).Mul(out.DailyRate))
	out.Tax = money(out.GrossSalary.Mul(payroll.TaxRate))
	out.Health = money(out.GrossSalary.Mul(payroll.HealthRate))
	out.Social = money(out.GrossSalary.Mul(payroll.SocialRate))
	out.AbsentDeduction = money(decimal.NewFromInt(int64(out.AbsentDays)).Mul(out.DailyRate))
	out.TotalDeductions = out.Tax.Add(out.Health).Add(out.Social).Add(out.AbsentDeduction)
	out.NetSalary = out.GrossSalary.Sub(out.TotalDeductions)

	return out
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(payroll.MoneyPlaces)
}

// recordsInPeriod drops records dated outside p so a sloppy range query can
// never inflate days worked.
func recordsInPeriod(records []attendance.AttendanceRecord, p payroll.Period) []attendance.AttendanceRecord {
	r := attendance.DateRange{From: p.Start(), To: p.End()}
	out := records[:0:0]
	for _, rec := range records {
		if r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

func weekdaysNotWorked(p payroll.Period, s attendance.Summary) int {
	absent := 0
	for d := p.Start(); !d.After(p.End()); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if !s.Worked(d) {
			absent++
		}
	}
	return absent
}
