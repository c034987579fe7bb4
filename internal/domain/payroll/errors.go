package payroll

import "errors"

var (
	ErrPayrollNotFound     = errors.New("payroll record not found")
	ErrPayrollExists       = errors.New("payroll record already exists for this period")
	ErrInvalidPeriod       = errors.New("invalid payroll period")
	ErrInvalidTransition   = errors.New("invalid payroll status transition")
	ErrPayslipNotAvailable = errors.New("payslip not available for this record")
	ErrNoEligibleEmployees = errors.New("no eligible employees for payroll generation")
)
