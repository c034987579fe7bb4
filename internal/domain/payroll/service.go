package payroll

import "context"

type PayrollService interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
	GetByID(ctx context.Context, id string) (*Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	UpdateStatus(ctx context.Context, userID string, req *UpdateStatusRequest) (*Payroll, error)

	// Payslip renders the PDF for a payroll record and returns its bytes
	// together with a suggested file name.
	Payslip(ctx context.Context, id string) ([]byte, string, error)

	// SummaryStats aggregates a period's records by status and by
	// department.
	SummaryStats(ctx context.Context, month, year int) (*SummaryStats, error)
}
