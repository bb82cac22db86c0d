package transaction

import "context"

type TransactionService interface {
	Create(ctx context.Context, req CreateTransactionRequest, actorID string) (TransactionResponse, error)
	GetByID(ctx context.Context, id string) (TransactionResponse, error)
	List(ctx context.Context, filter TransactionFilter) (ListTransactionResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest, actorID string) error
	Delete(ctx context.Context, id string, actorID string) error
}
