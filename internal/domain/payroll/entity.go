package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

var Statuses = []string{
	string(StatusDraft), string(StatusProcessed), string(StatusPaid), string(StatusCancelled),
}

// Earnings is the pay side of a payslip. Total is always recomputed from
// the components before persistence.
type Earnings struct {
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Overtime    decimal.Decimal `json:"overtime"`
	Bonus       decimal.Decimal `json:"bonus"`
	Total       decimal.Decimal `json:"total"`
}

// Deductions mirrors Earnings on the withholding side.
type Deductions struct {
	Tax             decimal.Decimal `json:"tax"`
	SocialSecurity  decimal.Decimal `json:"socialSecurity"`
	HealthInsurance decimal.Decimal `json:"healthInsurance"`
	Other           decimal.Decimal `json:"other"`
	Total           decimal.Decimal `json:"total"`
}

type Payroll struct {
	ID         string
	EmployeeID string
	Month      int // 1..12
	Year       int

	PeriodStart time.Time
	PeriodEnd   time.Time

	Earnings   Earnings
	Deductions Deductions
	NetSalary  decimal.Decimal

	// Attendance snapshot for the period
	WorkingDays   int
	PresentDays   int
	OvertimeHours float64

	PayslipNumber string
	Status        Status
	ProcessedBy   *string
	ProcessedAt   *time.Time
	PaidAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields
	EmployeeName *string
	EmployeeCode *string
	Department   *string
	Position     *string
}
