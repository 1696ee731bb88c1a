package transaction

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
	List(ctx context.Context) ([]Transaction, error)
	CountByUserAndStatus(ctx context.Context, userID string, status Status) (int64, error)
}
