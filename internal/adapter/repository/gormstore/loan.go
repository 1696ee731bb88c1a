package gormstore

import (
	"context"

	"paylite-backend/internal/domain/apperr"
	loanDomain "paylite-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// Create inserts the loan and, through the association, its schedule.
func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return apperr.Storage("create loan", r.db.WithContext(ctx).Create(l).Error)
}

// Save writes the loan row and every repayment inside one transaction, so
// a status flip and the balance decrement land together.
func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(l).Error; err != nil {
			return err
		}
		for i := range l.Repayments {
			l.Repayments[i].LoanID = l.LoanID
			if err := tx.Save(&l.Repayments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return apperr.Storage("save loan", err)
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.get(ctx, r.db.WithContext(ctx), loanID)
}

// GetByLoanIDForUpdate takes a row lock on MySQL/Postgres; the sqlite
// dialect drops the locking clause.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), loanID)
}

func (r *LoanRepository) get(_ context.Context, q *gorm.DB, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := q.Preload("Repayments", orderBySeq).Where("loan_id = ?", loanID).First(&out).Error
	if err != nil {
		return nil, lookupErr("get loan", err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).Preload("Repayments", orderBySeq).
		Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, apperr.Storage("list user loans", err)
	}
	return out, nil
}

func (r *LoanRepository) List(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	if err := r.db.WithContext(ctx).Preload("Repayments", orderBySeq).Order("id ASC").Find(&out).Error; err != nil {
		return nil, apperr.Storage("list loans", err)
	}
	return out, nil
}
