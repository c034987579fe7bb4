package employee

import "context"

// CreateResult carries the created employee plus the temporary password of
// the linked user account, when one was provisioned.
type CreateResult struct {
	Employee     *Employee
	TempPassword string
}

type EmployeeService interface {
	Create(ctx context.Context, req *CreateEmployeeRequest) (*CreateResult, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, req *UpdateEmployeeRequest) (*Employee, error)
	Deactivate(ctx context.Context, id string) error
	StatsOverview(ctx context.Context) (*StatsOverviewResponse, error)
}
