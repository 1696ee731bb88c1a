package loan

import (
	"strings"

	"paylite-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

type ApplyInput struct {
	Amount     decimal.Decimal `json:"amount"`
	TermMonths int             `json:"term_months"`
	Purpose    string          `json:"purpose"`
}

func (in *ApplyInput) validate() error {
	in.Purpose = strings.TrimSpace(in.Purpose)
	if in.Purpose == "" {
		return apperr.Validation("purpose is required")
	}
	return validateTerms(in.Amount, in.TermMonths)
}

func validateTerms(amount decimal.Decimal, termMonths int) error {
	if amount.LessThan(decimal.NewFromInt(MinAmount)) || amount.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return apperr.Validation("amount must be between %d and %d", MinAmount, MaxAmount)
	}
	if !amount.Equal(amount.Round(2)) {
		return apperr.Validation("amount must have at most 2 decimal places")
	}
	if termMonths < MinTermMonths || termMonths > MaxTermMonths {
		return apperr.Validation("term_months must be between %d and %d", MinTermMonths, MaxTermMonths)
	}
	return nil
}

// QuoteDTO previews a loan without booking it. AmortizedEMI is the
// reducing-balance figure, shown only for comparison.
type QuoteDTO struct {
	Amount        decimal.Decimal `json:"amount"`
	TermMonths    int             `json:"term_months"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	EMIAmount     decimal.Decimal `json:"emi_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	AmortizedEMI  decimal.Decimal `json:"amortized_emi"`
}
