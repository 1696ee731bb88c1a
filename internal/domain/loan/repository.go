package loan

import "context"

type Repository interface {
	// Create persists the loan together with its repayment schedule.
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate row-locks the loan where the database supports it.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByUser(ctx context.Context, userID string) ([]Loan, error)
	List(ctx context.Context) ([]Loan, error)
	// Save overwrites the loan row and upserts every repayment in one go.
	Save(ctx context.Context, l *Loan) error
}
