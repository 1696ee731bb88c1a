// Package dashboard aggregates payments and loans into the summary views.
// Everything is computed from the record store on each call.
package dashboard

import (
	"context"

	"paylite-backend/internal/domain/loan"
	"paylite-backend/internal/domain/transaction"
	"paylite-backend/internal/domain/user"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	users user.Repository
	txns  transaction.Repository
	loans loan.Repository
}

func NewUsecase(users user.Repository, txns transaction.Repository, loans loan.Repository) *Usecase {
	return &Usecase{users: users, txns: txns, loans: loans}
}

func (u *Usecase) UserSummary(ctx context.Context, userID string) (*UserSummary, error) {
	txns, err := u.txns.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	loans, err := u.loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s := &UserSummary{UserID: userID, TotalTransactions: len(txns), TotalLoans: len(loans)}
	s.SuccessfulTransactions, s.TotalSpent = sumSuccess(txns)
	s.ApprovedLoans, s.ApprovedPrincipal, s.OutstandingBalance = sumApproved(loans)
	for i := range loans {
		l := &loans[i]
		if !l.Active() {
			continue
		}
		s.ActiveLoans++
		if d := l.NextDue(); d != nil && (s.NextDue == nil || d.DueDate.Before(s.NextDue.DueDate)) {
			cp := *d
			s.NextDue = &cp
		}
	}
	return s, nil
}

func (u *Usecase) AdminSummary(ctx context.Context) (*AdminSummary, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	txns, err := u.txns.List(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := u.loans.List(ctx)
	if err != nil {
		return nil, err
	}

	s := &AdminSummary{TotalUsers: len(users), TotalTransactions: len(txns), TotalLoans: len(loans)}
	s.SuccessfulTransactions, s.Revenue = sumSuccess(txns)
	s.ApprovedLoans, s.ApprovedPrincipal, s.OutstandingBalance = sumApproved(loans)

	okByUser := map[string]int{}
	for _, t := range txns {
		if t.Status == transaction.StatusSuccess {
			okByUser[t.UserID]++
		}
	}
	loansByUser := map[string]int{}
	for _, l := range loans {
		loansByUser[l.UserID]++
		if l.Status == loan.StatusPending {
			s.PendingLoans++
		}
	}

	s.Users = make([]UserRow, 0, len(users))
	for _, usr := range users {
		s.Users = append(s.Users, UserRow{
			UserID:             usr.UserID,
			Email:              usr.Email,
			Name:               usr.Name,
			Role:               string(usr.Role),
			SuccessfulPayments: okByUser[usr.UserID],
			Loans:              loansByUser[usr.UserID],
		})
	}
	return s, nil
}

func sumSuccess(txns []transaction.Transaction) (int, decimal.Decimal) {
	n, total := 0, decimal.Zero
	for _, t := range txns {
		if t.Status == transaction.StatusSuccess {
			n++
			total = total.Add(t.Amount)
		}
	}
	return n, total
}

// sumApproved counts approved loans, their principal and what is still owed.
func sumApproved(loans []loan.Loan) (int, decimal.Decimal, decimal.Decimal) {
	n, principal, outstanding := 0, decimal.Zero, decimal.Zero
	for _, l := range loans {
		if l.Status != loan.StatusApproved {
			continue
		}
		n++
		principal = principal.Add(l.Amount)
		outstanding = outstanding.Add(l.RemainingBalance)
	}
	return n, principal, outstanding
}
