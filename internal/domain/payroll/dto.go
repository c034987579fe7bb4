package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrstack/hrms-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	EmployeeIDs []string `json:"employeeIds,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a plausible year"})
	}
	for _, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "employeeIds", Message: "contains an invalid id"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID     string           `json:"-"`
	Status string           `json:"status"`
	Bonus  *decimal.Decimal `json:"bonus,omitempty"`
	Other  *decimal.Decimal `json:"otherDeductions,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, processed, paid, cancelled"})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.Other != nil && r.Other.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "otherDeductions", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Status     *string
	Page       int
	Limit      int
}

type PayrollResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employeeId"`
	EmployeeName  *string         `json:"employeeName,omitempty"`
	EmployeeCode  *string         `json:"employeeCode,omitempty"`
	Department    *string         `json:"department,omitempty"`
	Position      *string         `json:"position,omitempty"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	PeriodStart   string          `json:"periodStart"`
	PeriodEnd     string          `json:"periodEnd"`
	Earnings      Earnings        `json:"earnings"`
	Deductions    Deductions      `json:"deductions"`
	NetSalary     decimal.Decimal `json:"netSalary"`
	WorkingDays   int             `json:"workingDays"`
	PresentDays   int             `json:"presentDays"`
	OvertimeHours float64         `json:"overtimeHours"`
	PayslipNumber string          `json:"payslipNumber"`
	Status        string          `json:"status"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func ToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		EmployeeName:  p.EmployeeName,
		EmployeeCode:  p.EmployeeCode,
		Department:    p.Department,
		Position:      p.Position,
		Month:         p.Month,
		Year:          p.Year,
		PeriodStart:   p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     p.PeriodEnd.Format("2006-01-02"),
		Earnings:      p.Earnings,
		Deductions:    p.Deductions,
		NetSalary:     p.NetSalary,
		WorkingDays:   p.WorkingDays,
		PresentDays:   p.PresentDays,
		OvertimeHours: p.OvertimeHours,
		PayslipNumber: p.PayslipNumber,
		Status:        string(p.Status),
		ProcessedAt:   p.ProcessedAt,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// GenerationError is one employee's failure inside a bulk run. Failures
// are collected, never raised, so one bad employee does not stop the rest.
type GenerationError struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName,omitempty"`
	Reason       string `json:"reason"`
}

type GenerateResult struct {
	Generated []PayrollResponse `json:"generated"`
	Errors    []GenerationError `json:"errors"`
}

type StatusSummary struct {
	Status   Status          `json:"status"`
	Count    int64           `json:"count"`
	TotalNet decimal.Decimal `json:"totalNet"`
}

type DepartmentSummary struct {
	Department string          `json:"department"`
	Count      int64           `json:"count"`
	TotalNet   decimal.Decimal `json:"totalNet"`
}

type SummaryStats struct {
	Month       int                 `json:"month"`
	Year        int                 `json:"year"`
	Statuses    []StatusSummary     `json:"statuses"`
	Departments []DepartmentSummary `json:"departments"`
}
