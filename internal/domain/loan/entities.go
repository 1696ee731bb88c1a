package loan

import (
	"time"

	"paylite-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = apperr.Kind(apperr.ErrNotFound, "loan not found")
	ErrRepaymentNotFound = apperr.Kind(apperr.ErrNotFound, "repayment not found")
	ErrAlreadyPaid       = apperr.Kind(apperr.ErrAlreadySettled, "installment already paid")
	ErrFullyRepaid       = apperr.Kind(apperr.ErrAlreadySettled, "loan already fully repaid")
	ErrNotApproved       = apperr.Kind(apperr.ErrValidation, "loan is not approved")
	ErrAlreadyApproved   = apperr.Kind(apperr.ErrConflict, "loan already approved")
	ErrInvalidTransition = apperr.Kind(apperr.ErrConflict, "invalid loan state transition")
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

type RepaymentStatus string

const (
	RepaymentPending RepaymentStatus = "Pending"
	RepaymentPaid    RepaymentStatus = "Paid"
	// Overdue is reserved for a due-date sweeper; nothing in this service assigns it.
	RepaymentOverdue RepaymentStatus = "Overdue"
)

// Table: loans. Repayments hang off loan_id and are always loaded in Seq order.
type Loan struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID           string          `gorm:"size:32;index:idx_loans_user" json:"user_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Purpose          string          `gorm:"type:text" json:"purpose"`
	Status           Status          `gorm:"size:16;index" json:"status"`
	InterestRate     decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate"`
	TermMonths       int             `json:"term_months"`
	EMIAmount        decimal.Decimal `gorm:"column:emi_amount;type:decimal(18,2)" json:"emi_amount"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(18,2)" json:"remaining_balance"`
	AppliedAt        time.Time       `json:"applied_at"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	Repayments       []Repayment     `gorm:"foreignKey:LoanID;references:LoanID" json:"repayments"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"-"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Table: loan_repayments.
type Repayment struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID string          `gorm:"size:32;uniqueIndex:ux_loan_repayments_repayment_id" json:"repayment_id"`
	LoanID      string          `gorm:"size:32;index:idx_loan_repayments_loan_seq" json:"loan_id"`
	Seq         int             `gorm:"index:idx_loan_repayments_loan_seq" json:"seq"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Status      RepaymentStatus `gorm:"size:16" json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
}

func (Repayment) TableName() string { return "loan_repayments" }

// Active reports an approved loan that still has money outstanding.
func (l *Loan) Active() bool {
	return l.Status == StatusApproved && l.RemainingBalance.IsPositive()
}

// FindRepayment returns the index of repaymentID in l.Repayments, or -1.
func (l *Loan) FindRepayment(repaymentID string) int {
	for i := range l.Repayments {
		if l.Repayments[i].RepaymentID == repaymentID {
			return i
		}
	}
	return -1
}

// NextDue returns the first pending installment in schedule order, or nil.
func (l *Loan) NextDue() *Repayment {
	for i := range l.Repayments {
		if l.Repayments[i].Status == RepaymentPending {
			return &l.Repayments[i]
		}
	}
	return nil
}
