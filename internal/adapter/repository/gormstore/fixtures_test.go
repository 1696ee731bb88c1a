package gormstore

import (
	"time"

	loanDomain "paylite-backend/internal/domain/loan"
	txnDomain "paylite-backend/internal/domain/transaction"
	userDomain "paylite-backend/internal/domain/user"
	"paylite-backend/pkg/id"

	"github.com/shopspring/decimal"
)

func makeUser(email string, role userDomain.Role) *userDomain.User {
	return &userDomain.User{
		UserID:       id.NewID32(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$04$hash",
		Role:         role,
	}
}

func makeTxn(userID string, status txnDomain.Status, amount int64) *txnDomain.Transaction {
	return &txnDomain.Transaction{
		TransactionID: id.NewID32(),
		UserID:        userID,
		Amount:        decimal.NewFromInt(amount),
		Channel:       txnDomain.ChannelUPI,
		Description:   "groceries",
		ChannelRef:    "someone@upi",
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
}

// makeApprovedLoan builds a 20000/12 loan with a three-entry schedule.
func makeApprovedLoan(userID string) *loanDomain.Loan {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	l := &loanDomain.Loan{
		LoanID:           id.NewID32(),
		UserID:           userID,
		Amount:           decimal.NewFromInt(20000),
		Purpose:          "school fees",
		Status:           loanDomain.StatusApproved,
		InterestRate:     decimal.NewFromInt(12),
		TermMonths:       3,
		EMIAmount:        decimal.NewFromInt(7000),
		TotalAmount:      decimal.NewFromInt(20600),
		RemainingBalance: decimal.NewFromInt(20600),
		AppliedAt:        now,
		ApprovedAt:       &now,
	}
	// insert out of order to prove reads come back by seq
	for _, seq := range []int{2, 1, 3} {
		l.Repayments = append(l.Repayments, loanDomain.Repayment{
			RepaymentID: id.NewID32(),
			LoanID:      l.LoanID,
			Seq:         seq,
			Amount:      decimal.NewFromInt(7000),
			DueDate:     now.AddDate(0, seq, 0),
			Status:      loanDomain.RepaymentPending,
		})
	}
	return l
}
