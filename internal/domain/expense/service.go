package expense

import "context"

type ExpenseService interface {
	Create(ctx context.Context, req CreateExpenseRequest, actorID string) (ExpenseResponse, error)
	GetByID(ctx context.Context, id string) (ExpenseResponse, error)
	ListByMonth(ctx context.Context, month string) ([]ExpenseResponse, error)
	Update(ctx context.Context, req UpdateExpenseRequest, actorID string) error
	Delete(ctx context.Context, id string, actorID string) error
}
