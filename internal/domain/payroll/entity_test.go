package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodDays(t *testing.T) {
	tests := []struct {
		period Period
		want   int
	}{
		{Period{Year: 2024, Month: time.February}, 29},
		{Period{Year: 2023, Month: time.February}, 28},
		{Period{Year: 2024, Month: time.April}, 30},
		{Period{Year: 2024, Month: time.December}, 31},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.period.Days(), tt.period.String())
	}
}

func TestPeriodBounds(t *testing.T) {
	p := Period{Year: 2024, Month: time.March}

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), p.End())
	assert.Equal(t, "2024-03", p.String())
	assert.Equal(t, Period{Year: 2024, Month: time.February}, p.Previous())
	assert.Equal(t, Period{Year: 2023, Month: time.December}, Period{Year: 2024, Month: time.January}.Previous())
}

func TestGeneratePayrollRequestValidate(t *testing.T) {
	req := GeneratePayrollRequest{Month: 2, Year: 2024}
	p, err := req.Validate()
	assert.NoError(t, err)
	assert.Equal(t, Period{Year: 2024, Month: time.February}, p)

	for _, bad := range []GeneratePayrollRequest{{Month: 0, Year: 2024}, {Month: 13, Year: 2024}, {Month: 1, Year: 0}} {
		_, err := bad.Validate()
		assert.Error(t, err)
	}
}

func TestViewPayrollRequestValidate(t *testing.T) {
	month, year := 3, 2024

	assert.NoError(t, (&ViewPayrollRequest{}).Validate())
	assert.NoError(t, (&ViewPayrollRequest{Year: &year}).Validate())
	assert.NoError(t, (&ViewPayrollRequest{Month: &month, Year: &year}).Validate())
	assert.Error(t, (&ViewPayrollRequest{Month: &month}).Validate())
	assert.Error(t, (&ViewPayrollRequest{EmployeeID: "not-a-uuid"}).Validate())
}
