package approval

import (
	"time"

	"paylite-backend/internal/domain/apperr"
)

var (
	ErrNotFound        = apperr.Kind(apperr.ErrNotFound, "approval not found")
	ErrInvalidDecision = apperr.Kind(apperr.ErrValidation, "decision must be Approved or Rejected")
)

type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

func (d Decision) Valid() bool { return d == DecisionApproved || d == DecisionRejected }

// Table: loan_approvals. A manual review outcome for a loan that was not
// auto-approved; the unique index keeps it to one per loan.
type Approval struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApprovalID string    `gorm:"column:approval_id;size:32;uniqueIndex:ux_loan_approvals_approval_id" json:"approval_id"`
	LoanID     string    `gorm:"column:loan_id;size:32;uniqueIndex:ux_loan_approvals_loan_id" json:"loan_id"`
	ReviewerID string    `gorm:"column:reviewer_id;size:32;not null" json:"reviewer_id"`
	Decision   Decision  `gorm:"column:decision;size:16;not null" json:"decision"`
	Note       string    `gorm:"column:note;type:text" json:"note,omitempty"`
	DecidedAt  time.Time `gorm:"column:decided_at;not null" json:"decided_at"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Approval) TableName() string { return "loan_approvals" }
