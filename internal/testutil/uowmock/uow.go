// Package uowmock fakes uow.UnitOfWork for usecase tests.
package uowmock

import (
	"context"
	"errors"

	"paylite-backend/internal/domain/loan"
	"paylite-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW dispatches to whichever Fn fields a test sets; the rest fail with
// errUnimplemented.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	ClearAllFn     func(ctx context.Context) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs callbacks straight against repos with no transaction.
// WithinLoanTx loads the loan through repos.Loans first, like the gorm one.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(uow.Repos, *loan.Loan) error) error {
			l, err := repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
		ClearAllFn: func(context.Context) error { return nil },
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn == nil {
		return errUnimplemented
	}
	return m.WithinTxFn(ctx, fn)
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn == nil {
		return errUnimplemented
	}
	return m.WithinLoanTxFn(ctx, loanID, fn)
}

func (m *UoW) ClearAll(ctx context.Context) error {
	if m.ClearAllFn == nil {
		return errUnimplemented
	}
	return m.ClearAllFn(ctx)
}
