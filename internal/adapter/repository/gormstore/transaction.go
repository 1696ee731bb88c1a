package gormstore

import (
	"context"

	"paylite-backend/internal/domain/apperr"
	txnDomain "paylite-backend/internal/domain/transaction"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txnDomain.Transaction) error {
	return apperr.Storage("create transaction", r.db.WithContext(ctx).Create(t).Error)
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*txnDomain.Transaction, error) {
	var out txnDomain.Transaction
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&out).Error
	if err != nil {
		return nil, lookupErr("get transaction", err, txnDomain.ErrNotFound)
	}
	return &out, nil
}

// ListByUser returns rows in storage order; callers sort for display.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]txnDomain.Transaction, error) {
	var out []txnDomain.Transaction
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, apperr.Storage("list user transactions", err)
	}
	return out, nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]txnDomain.Transaction, error) {
	var out []txnDomain.Transaction
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, apperr.Storage("list transactions", err)
	}
	return out, nil
}

func (r *TransactionRepository) CountByUserAndStatus(ctx context.Context, userID string, status txnDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&txnDomain.Transaction{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&n).Error
	if err != nil {
		return 0, apperr.Storage("count transactions", err)
	}
	return n, nil
}
