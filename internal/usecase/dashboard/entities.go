package dashboard

import (
	"paylite-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type UserSummary struct {
	UserID                 string          `json:"user_id"`
	TotalTransactions      int             `json:"total_transactions"`
	SuccessfulTransactions int             `json:"successful_transactions"`
	TotalSpent             decimal.Decimal `json:"total_spent"`
	TotalLoans             int             `json:"total_loans"`
	ApprovedLoans          int             `json:"approved_loans"`
	ApprovedPrincipal      decimal.Decimal `json:"approved_principal"`
	OutstandingBalance     decimal.Decimal `json:"outstanding_balance"`
	ActiveLoans            int             `json:"active_loans"`
	// earliest pending installment across active loans
	NextDue *loan.Repayment `json:"next_due,omitempty"`
}

type UserRow struct {
	UserID             string `json:"user_id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	SuccessfulPayments int    `json:"successful_payments"`
	Loans              int    `json:"loans"`
}

type AdminSummary struct {
	TotalUsers             int             `json:"total_users"`
	TotalTransactions      int             `json:"total_transactions"`
	SuccessfulTransactions int             `json:"successful_transactions"`
	Revenue                decimal.Decimal `json:"revenue"`
	TotalLoans             int             `json:"total_loans"`
	PendingLoans           int             `json:"pending_loans"`
	ApprovedLoans          int             `json:"approved_loans"`
	ApprovedPrincipal      decimal.Decimal `json:"approved_principal"`
	OutstandingBalance     decimal.Decimal `json:"outstanding_balance"`
	Users                  []UserRow       `json:"users"`
}
