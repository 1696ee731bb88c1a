// Package event describes the domain events the service emits after a
// state change has been committed.
package event

import (
	"context"
	"time"
)

// Queue names; each is a durable queue bound to the default exchange.
const (
	PaymentProcessed = "payment.processed"
	LoanApplied      = "loan.applied"
	LoanReviewed     = "loan.reviewed"
	LoanRepaid       = "loan.repaid"
)

type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, e Envelope) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Envelope) error { return nil }

type PaymentProcessedPayload struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	Amount        string `json:"amount"`
	Channel       string `json:"channel"`
	Status        string `json:"status"`
}

type LoanPayload struct {
	LoanID           string `json:"loan_id"`
	UserID           string `json:"user_id"`
	Status           string `json:"status"`
	Amount           string `json:"amount"`
	EMIAmount        string `json:"emi_amount"`
	RemainingBalance string `json:"remaining_balance"`
	RepaymentID      string `json:"repayment_id,omitempty"`
}
