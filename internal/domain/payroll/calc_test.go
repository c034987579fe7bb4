package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestApplyTotals(t *testing.T) {
	p := &Payroll{
		Earnings: Earnings{
			BasicSalary: d("5000"),
			Allowances:  d("1000"),
			Overtime:    d("500"),
			Bonus:       d("200"),
		},
		Deductions: Deductions{
			Tax:             d("1005"),
			SocialSecurity:  d("415.34"),
			HealthInsurance: d("335"),
			Other:           decimal.Zero,
		},
		Status: StatusDraft,
	}

	ApplyTotals(p, time.Now())

	assert.True(t, p.Earnings.Total.Equal(d("6700")), "earnings total = %s", p.Earnings.Total)
	assert.True(t, p.Deductions.Total.Equal(d("1755.34")), "deductions total = %s", p.Deductions.Total)
	assert.True(t, p.NetSalary.Equal(d("4944.66")), "net salary = %s", p.NetSalary)
	assert.Nil(t, p.ProcessedAt)
	assert.Nil(t, p.PaidAt)
}

func TestApplyTotalsIsIdempotent(t *testing.T) {
	p := &Payroll{
		Earnings:   Earnings{BasicSalary: d("4200"), Allowances: d("300")},
		Deductions: StandardDeductions(d("4500")),
		Status:     StatusDraft,
	}

	ApplyTotals(p, time.Now())
	first := *p
	ApplyTotals(p, time.Now())

	assert.True(t, first.Earnings.Total.Equal(p.Earnings.Total))
	assert.True(t, first.Deductions.Total.Equal(p.Deductions.Total))
	assert.True(t, first.NetSalary.Equal(p.NetSalary))
}

func TestApplyTotalsStampsTimestampsOnce(t *testing.T) {
	p := &Payroll{Status: StatusProcessed}

	t0 := time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC)
	ApplyTotals(p, t0)
	require.NotNil(t, p.ProcessedAt)
	assert.Equal(t, t0, *p.ProcessedAt)

	// A later run must not move the stamp.
	ApplyTotals(p, t0.Add(48*time.Hour))
	assert.Equal(t, t0, *p.ProcessedAt)

	p.Status = StatusPaid
	t1 := t0.Add(72 * time.Hour)
	ApplyTotals(p, t1)
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, t1, *p.PaidAt)
	// processedAt survives the transition to paid
	assert.Equal(t, t0, *p.ProcessedAt)
}

func TestOvertimePay(t *testing.T) {
	// 4800 monthly basic over 240 base hours is 20/hour, 1.5x for overtime.
	got := OvertimePay(d("4800"), 10)
	assert.True(t, got.Equal(d("300")), "overtime pay = %s", got)

	assert.True(t, OvertimePay(d("4800"), 0).IsZero())
}

func TestStandardDeductions(t *testing.T) {
	ded := StandardDeductions(d("6700"))

	assert.True(t, ded.Tax.Equal(d("1005")), "tax = %s", ded.Tax)
	assert.True(t, ded.SocialSecurity.Equal(d("415.40")), "social security = %s", ded.SocialSecurity)
	assert.True(t, ded.HealthInsurance.Equal(d("335")), "health insurance = %s", ded.HealthInsurance)
	assert.True(t, ded.Other.IsZero())
}

func TestPayslipNumber(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		month      int
		employeeID string
		want       string
	}{
		{"uuid suffix", 2025, 3, "0d9c6f8a-1b2e-4c3d-9e0f-a1b2c3d4e9af", "PAY202503E9AF"},
		{"single digit month padded", 2024, 7, "abcd-1234", "PAY2024071234"},
		{"short id used whole", 2025, 12, "77", "PAY20251277"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PayslipNumber(tt.year, tt.month, tt.employeeID))
		})
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end := PeriodBounds(2, 2024)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), end)
}
