package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest, actorID string) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest, actorID string) error
	Deactivate(ctx context.Context, id string, actorID string) error
	List(ctx context.Context, activeOnly bool) ([]EmployeeResponse, error)
}
