package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByCode(ctx context.Context, code string) (*Employee, error)
	GetByUserID(ctx context.Context, userID string) (*Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, e *Employee) error
	SetStatus(ctx context.Context, id string, status Status) error

	// NextCode returns the next unused sequential employee code.
	NextCode(ctx context.Context) (string, error)

	// ManagerAssignments returns employee id -> reporting manager id for
	// every employee that has a manager set.
	ManagerAssignments(ctx context.Context) (map[string]string, error)

	StatsOverview(ctx context.Context) (*StatsOverviewResponse, error)
}
