package uow

import (
	"context"

	"paylite-backend/internal/domain/approval"
	"paylite-backend/internal/domain/loan"
	"paylite-backend/internal/domain/transaction"
	"paylite-backend/internal/domain/user"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Users        user.Repository
	Transactions transaction.Repository
	Loans        loan.Repository
	Approvals    approval.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// ClearAll wipes every collection. Data-reset utility only.
	ClearAll(ctx context.Context) error
}
