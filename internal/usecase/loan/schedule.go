package loan

import (
	"time"

	"paylite-backend/internal/domain/loan"
	"paylite-backend/pkg/id"

	"github.com/shopspring/decimal"
)

// GenerateRepaymentSchedule returns TermMonths pending installments of
// EMIAmount, the i-th due i months after approval (application time when
// the loan has no approval time). Month overflow follows time.AddDate.
func GenerateRepaymentSchedule(l *loan.Loan) []loan.Repayment {
	start := l.AppliedAt
	if l.ApprovedAt != nil {
		start = *l.ApprovedAt
	}
	out := make([]loan.Repayment, 0, l.TermMonths)
	for i := 0; i < l.TermMonths; i++ {
		out = append(out, loan.Repayment{
			RepaymentID: id.NewID32(),
			LoanID:      l.LoanID,
			Seq:         i + 1,
			Amount:      l.EMIAmount,
			DueDate:     start.AddDate(0, i+1, 0),
			Status:      loan.RepaymentPending,
		})
	}
	return out
}

// Approve moves l to Approved at the given time: the full repayable
// amount becomes the balance and the schedule is generated.
func Approve(l *loan.Loan, at time.Time) {
	l.Status = loan.StatusApproved
	l.ApprovedAt = &at
	l.RemainingBalance = l.TotalAmount
	l.Repayments = GenerateRepaymentSchedule(l)
}

// Reject closes l without a schedule.
func Reject(l *loan.Loan) {
	l.Status = loan.StatusRejected
	l.ApprovedAt = nil
	l.RemainingBalance = decimal.Zero
	l.Repayments = nil
}

// payInstallment marks l.Repayments[i] paid and takes its amount off the
// balance, never below zero. Paying the last open installment closes the
// loan, which forgives any rounding residue left by a rounded-down EMI.
func payInstallment(l *loan.Loan, i int, at time.Time) {
	r := &l.Repayments[i]
	r.Status = loan.RepaymentPaid
	r.PaidAt = &at

	l.RemainingBalance = decimal.Max(decimal.Zero, l.RemainingBalance.Sub(r.Amount))
	if l.NextDue() == nil {
		l.RemainingBalance = decimal.Zero
	}
}

// payFlat is the schedule-less repayment: one EMI off the balance and a
// Paid record appended after the fact.
func payFlat(l *loan.Loan, at time.Time) *loan.Repayment {
	amount := decimal.Min(l.EMIAmount, l.RemainingBalance)
	l.RemainingBalance = decimal.Max(decimal.Zero, l.RemainingBalance.Sub(l.EMIAmount))
	l.Repayments = append(l.Repayments, loan.Repayment{
		RepaymentID: id.NewID32(),
		LoanID:      l.LoanID,
		Seq:         len(l.Repayments) + 1,
		Amount:      amount,
		DueDate:     at,
		Status:      loan.RepaymentPaid,
		PaidAt:      &at,
	})
	return &l.Repayments[len(l.Repayments)-1]
}
