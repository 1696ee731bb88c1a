package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"paylite-backend/internal/domain/loan"
	"paylite-backend/internal/domain/transaction"
	"paylite-backend/internal/domain/user"
	"paylite-backend/internal/testutil/loanmock"
	"paylite-backend/internal/testutil/txnmock"
	"paylite-backend/internal/testutil/usermock"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var day = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func fixture() ([]user.User, []transaction.Transaction, []loan.Loan) {
	users := []user.User{
		{UserID: "u1", Email: "a@x.io", Name: "A", Role: user.RoleAdmin},
		{UserID: "u2", Email: "b@x.io", Name: "B", Role: user.RoleUser},
	}
	txns := []transaction.Transaction{
		{TransactionID: "t1", UserID: "u1", Amount: d("100.50"), Status: transaction.StatusSuccess},
		{TransactionID: "t2", UserID: "u1", Amount: d("40"), Status: transaction.StatusFailed},
		{TransactionID: "t3", UserID: "u1", Amount: d("10"), Status: transaction.StatusSuccess},
		{TransactionID: "t4", UserID: "u2", Amount: d("7"), Status: transaction.StatusPending},
	}
	loans := []loan.Loan{
		{
			LoanID: "l1", UserID: "u1", Amount: d("20000"), Status: loan.StatusApproved,
			RemainingBalance: d("5000"),
			Repayments: []loan.Repayment{
				{RepaymentID: "r1", Seq: 1, DueDate: day.AddDate(0, 1, 0), Status: loan.RepaymentPaid},
				{RepaymentID: "r2", Seq: 2, DueDate: day.AddDate(0, 2, 0), Status: loan.RepaymentPending},
			},
		},
		{
			LoanID: "l2", UserID: "u1", Amount: d("10000"), Status: loan.StatusApproved,
			RemainingBalance: d("3000"),
			Repayments: []loan.Repayment{
				{RepaymentID: "r3", Seq: 1, DueDate: day.AddDate(0, 0, 10), Status: loan.RepaymentPending},
			},
		},
		{LoanID: "l3", UserID: "u1", Amount: d("15000"), Status: loan.StatusApproved, RemainingBalance: decimal.Zero},
		{LoanID: "l4", UserID: "u2", Amount: d("12000"), Status: loan.StatusPending, RemainingBalance: decimal.Zero},
		{LoanID: "l5", UserID: "u2", Amount: d("11000"), Status: loan.StatusRejected, RemainingBalance: decimal.Zero},
	}
	return users, txns, loans
}

func newUsecase() *Usecase {
	users, txns, loans := fixture()
	return NewUsecase(
		&usermock.Repo{ListFn: func(context.Context) ([]user.User, error) { return users, nil }},
		&txnmock.Repo{
			ListFn: func(context.Context) ([]transaction.Transaction, error) { return txns, nil },
			ListByUserFn: func(_ context.Context, id string) ([]transaction.Transaction, error) {
				var out []transaction.Transaction
				for _, t := range txns {
					if t.UserID == id {
						out = append(out, t)
					}
				}
				return out, nil
			},
		},
		&loanmock.Repo{
			ListFn: func(context.Context) ([]loan.Loan, error) { return loans, nil },
			ListByUserFn: func(_ context.Context, id string) ([]loan.Loan, error) {
				var out []loan.Loan
				for _, l := range loans {
					if l.UserID == id {
						out = append(out, l)
					}
				}
				return out, nil
			},
		},
	)
}

func TestUserSummary(t *testing.T) {
	s, err := newUsecase().UserSummary(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if s.TotalTransactions != 3 || s.SuccessfulTransactions != 2 {
		t.Fatalf("txn counts = %d/%d", s.TotalTransactions, s.SuccessfulTransactions)
	}
	if !s.TotalSpent.Equal(d("110.50")) {
		t.Fatalf("total spent = %s", s.TotalSpent)
	}
	if s.TotalLoans != 3 || s.ApprovedLoans != 3 || s.ActiveLoans != 2 {
		t.Fatalf("loan counts = %d/%d/%d", s.TotalLoans, s.ApprovedLoans, s.ActiveLoans)
	}
	if !s.ApprovedPrincipal.Equal(d("45000")) || !s.OutstandingBalance.Equal(d("8000")) {
		t.Fatalf("principal/outstanding = %s/%s", s.ApprovedPrincipal, s.OutstandingBalance)
	}
	if s.NextDue == nil || s.NextDue.RepaymentID != "r3" {
		t.Fatalf("next due = %+v, want r3", s.NextDue)
	}
}

func TestUserSummary_Empty(t *testing.T) {
	s, err := newUsecase().UserSummary(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if s.TotalTransactions != 0 || !s.TotalSpent.IsZero() || s.NextDue != nil {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestAdminSummary(t *testing.T) {
	s, err := newUsecase().AdminSummary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.TotalUsers != 2 || s.TotalTransactions != 4 || s.SuccessfulTransactions != 2 {
		t.Fatalf("counts = %+v", s)
	}
	if !s.Revenue.Equal(d("110.50")) {
		t.Fatalf("revenue = %s", s.Revenue)
	}
	if s.TotalLoans != 5 || s.PendingLoans != 1 || s.ApprovedLoans != 3 {
		t.Fatalf("loan counts = %d/%d/%d", s.TotalLoans, s.PendingLoans, s.ApprovedLoans)
	}
	if !s.OutstandingBalance.Equal(d("8000")) {
		t.Fatalf("outstanding = %s", s.OutstandingBalance)
	}
	want := map[string][2]int{"u1": {2, 3}, "u2": {0, 2}}
	for _, row := range s.Users {
		w := want[row.UserID]
		if row.SuccessfulPayments != w[0] || row.Loans != w[1] {
			t.Fatalf("row %s = %+v, want %v", row.UserID, row, w)
		}
	}
}

func TestAdminSummary_StorageError(t *testing.T) {
	boom := errors.New("boom")
	uc := NewUsecase(
		&usermock.Repo{ListFn: func(context.Context) ([]user.User, error) { return nil, boom }},
		&txnmock.Repo{},
		&loanmock.Repo{},
	)
	if _, err := uc.AdminSummary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
