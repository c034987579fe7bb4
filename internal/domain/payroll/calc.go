package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Flat statutory rates applied to gross earnings at generation time.
var (
	TaxRate             = decimal.NewFromFloat(0.15)
	SocialSecurityRate  = decimal.NewFromFloat(0.062)
	HealthInsuranceRate = decimal.NewFromFloat(0.05)
)

// OvertimeMultiplier scales the hourly rate for overtime pay.
var OvertimeMultiplier = decimal.NewFromFloat(1.5)

// The hourly rate divides the monthly basic over a 30-day month of
// 8-hour days.
var monthlyBaseHours = decimal.NewFromInt(30 * 8)

// ApplyTotals recomputes earnings.total, deductions.total and netSalary
// from their components, and stamps processedAt/paidAt the first time the
// record reaches the matching status. It is a fixed point: re-applying it
// to an already-consistent record changes nothing.
func ApplyTotals(p *Payroll, now time.Time) {
	p.Earnings.Total = p.Earnings.BasicSalary.
		Add(p.Earnings.Allowances).
		Add(p.Earnings.Overtime).
		Add(p.Earnings.Bonus)

	p.Deductions.Total = p.Deductions.Tax.
		Add(p.Deductions.SocialSecurity).
		Add(p.Deductions.HealthInsurance).
		Add(p.Deductions.Other)

	p.NetSalary = p.Earnings.Total.Sub(p.Deductions.Total)

	if p.Status == StatusProcessed && p.ProcessedAt == nil {
		t := now
		p.ProcessedAt = &t
	}
	if p.Status == StatusPaid && p.PaidAt == nil {
		t := now
		p.PaidAt = &t
	}
}

// OvertimePay converts overtime hours into pay at 1.5x the hourly rate
// derived from the monthly basic salary.
func OvertimePay(basicSalary decimal.Decimal, overtimeHours float64) decimal.Decimal {
	hourlyRate := basicSalary.Div(monthlyBaseHours)
	return hourlyRate.
		Mul(decimal.NewFromFloat(overtimeHours)).
		Mul(OvertimeMultiplier).
		Round(2)
}

// StandardDeductions derives the statutory withholdings from gross
// earnings, each rounded to cents.
func StandardDeductions(gross decimal.Decimal) Deductions {
	return Deductions{
		Tax:             gross.Mul(TaxRate).Round(2),
		SocialSecurity:  gross.Mul(SocialSecurityRate).Round(2),
		HealthInsurance: gross.Mul(HealthInsuranceRate).Round(2),
		Other:           decimal.Zero,
	}
}

// PayslipNumber builds the display reference for a payslip. It is not
// guaranteed unique across employees whose ids share a suffix.
func PayslipNumber(year, month int, employeeID string) string {
	suffix := employeeID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("PAY%d%02d%s", year, month, strings.ToUpper(suffix))
}

// PeriodBounds returns the first and last day of the pay period.
func PeriodBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
