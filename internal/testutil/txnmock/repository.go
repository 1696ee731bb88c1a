package txnmock

import (
	"context"

	domain "paylite-backend/internal/domain/transaction"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, t *domain.Transaction) error
	GetByTransactionIDFn   func(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListByUserFn           func(ctx context.Context, userID string) ([]domain.Transaction, error)
	ListFn                 func(ctx context.Context) ([]domain.Transaction, error)
	CountByUserAndStatusFn func(ctx context.Context, userID string, status domain.Status) (int64, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if m.GetByTransactionIDFn != nil {
		return m.GetByTransactionIDFn(ctx, transactionID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByUserAndStatus(ctx context.Context, userID string, status domain.Status) (int64, error) {
	if m.CountByUserAndStatusFn != nil {
		return m.CountByUserAndStatusFn(ctx, userID, status)
	}
	return 0, context.Canceled
}
