package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
}
