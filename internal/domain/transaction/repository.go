package transaction

import "context"

type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
	UpdateStatus(ctx context.Context, id string, status TransactionStatus) error
	Delete(ctx context.Context, id string) error
}
