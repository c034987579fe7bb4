package payroll

import "context"

type PayrollRepository interface {
	Create(ctx context.Context, p *Payroll) error
	GetByID(ctx context.Context, id string) (*Payroll, error)
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	Update(ctx context.Context, p *Payroll) error
	SummaryStats(ctx context.Context, month, year int) (*SummaryStats, error)
}
