package loan

import (
	"context"
	"slices"
	"time"

	"paylite-backend/internal/domain/event"
	"paylite-backend/internal/domain/loan"
	"paylite-backend/internal/domain/transaction"
	"paylite-backend/internal/domain/uow"
	"paylite-backend/internal/infrastructure/metrics"
	"paylite-backend/pkg/clock"
	"paylite-backend/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	loans   loan.Repository
	txns    transaction.Repository
	uow     uow.UnitOfWork
	log     *zap.Logger
	pub     event.Publisher
	metrics metrics.Recorder
	now     func() time.Time
	delay   time.Duration
}

type Option func(*Usecase)

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithPublisher(p event.Publisher) Option { return func(u *Usecase) { u.pub = p } }

func WithMetrics(m metrics.Recorder) Option { return func(u *Usecase) { u.metrics = m } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// WithProcessingDelay sets the simulated underwriting time Apply waits for.
func WithProcessingDelay(d time.Duration) Option { return func(u *Usecase) { u.delay = d } }

// NewUsecase: loans and txns serve reads, tx serves every mutation.
func NewUsecase(loans loan.Repository, txns transaction.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		loans:   loans,
		txns:    txns,
		uow:     tx,
		log:     zap.NewNop(),
		pub:     event.Nop{},
		metrics: metrics.Nop{},
		now:     clock.UTC,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Apply books a loan for userID. Applicants with enough successful
// payments are approved on the spot; everyone else waits in Pending for
// an admin review.
func (u *Usecase) Apply(ctx context.Context, userID string, in ApplyInput) (*loan.Loan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := clock.Sleep(ctx, u.delay); err != nil {
		return nil, err
	}

	successes, err := u.txns.CountByUserAndStatus(ctx, userID, transaction.StatusSuccess)
	if err != nil {
		return nil, err
	}

	rate := decimal.NewFromInt(InterestRate)
	now := u.now()
	l := &loan.Loan{
		LoanID:           id.NewID32(),
		UserID:           userID,
		Amount:           in.Amount,
		Purpose:          in.Purpose,
		Status:           loan.StatusPending,
		InterestRate:     rate,
		TermMonths:       in.TermMonths,
		EMIAmount:        CalculateEMI(in.Amount, rate, in.TermMonths),
		TotalAmount:      TotalRepayable(in.Amount, rate, in.TermMonths),
		RemainingBalance: decimal.Zero,
		AppliedAt:        now,
	}
	if Eligible(successes) {
		Approve(l, now)
	}

	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}

	u.metrics.RecordLoanApplication(string(l.Status))
	u.publish(ctx, event.LoanApplied, Payload(l, ""))
	u.log.Info("loan applied",
		zap.String("loan_id", l.LoanID),
		zap.String("user_id", userID),
		zap.String("status", string(l.Status)),
		zap.Int64("successful_payments", successes),
	)
	return l, nil
}

// RepayEMI pays one scheduled installment. A paid installment is never
// paid twice; the second call fails with loan.ErrAlreadyPaid and leaves
// the balance alone.
func (u *Usecase) RepayEMI(ctx context.Context, loanID, repaymentID string) (*loan.Loan, error) {
	var out *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		i := l.FindRepayment(repaymentID)
		if i < 0 {
			return loan.ErrRepaymentNotFound
		}
		if l.Repayments[i].Status != loan.RepaymentPending {
			return loan.ErrAlreadyPaid
		}
		payInstallment(l, i, u.now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.afterRepay(ctx, out, repaymentID)
	return out, nil
}

// RepayNext pays whatever is due next without naming an installment.
//
// Deprecated: kept for clients of the schedule-less flow; use RepayEMI.
func (u *Usecase) RepayNext(ctx context.Context, loanID string) (*loan.Loan, error) {
	var (
		out         *loan.Loan
		repaymentID string
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusApproved {
			return loan.ErrNotApproved
		}
		if !l.RemainingBalance.IsPositive() {
			return loan.ErrFullyRepaid
		}
		if next := l.NextDue(); next != nil {
			repaymentID = next.RepaymentID
			payInstallment(l, l.FindRepayment(repaymentID), u.now())
		} else {
			// legacy loan booked without a schedule
			repaymentID = payFlat(l, u.now()).RepaymentID
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.afterRepay(ctx, out, repaymentID)
	return out, nil
}

func (u *Usecase) afterRepay(ctx context.Context, l *loan.Loan, repaymentID string) {
	settled := l.RemainingBalance.IsZero()
	u.metrics.RecordRepayment(settled)
	u.publish(ctx, event.LoanRepaid, Payload(l, repaymentID))
	u.log.Info("loan repayment",
		zap.String("loan_id", l.LoanID),
		zap.String("repayment_id", repaymentID),
		zap.String("remaining_balance", l.RemainingBalance.String()),
		zap.Bool("settled", settled),
	)
}

// Quote computes the figures Apply would book, without eligibility or I/O.
func (u *Usecase) Quote(amount decimal.Decimal, termMonths int) (*QuoteDTO, error) {
	if err := validateTerms(amount, termMonths); err != nil {
		return nil, err
	}
	rate := decimal.NewFromInt(InterestRate)
	total := TotalRepayable(amount, rate, termMonths)
	return &QuoteDTO{
		Amount:        amount,
		TermMonths:    termMonths,
		InterestRate:  rate,
		EMIAmount:     CalculateEMI(amount, rate, termMonths),
		TotalAmount:   total,
		TotalInterest: total.Sub(amount),
		AmortizedEMI:  AmortizedEMI(amount, rate, termMonths),
	}, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*loan.Loan, error) {
	return u.loans.GetByLoanID(ctx, loanID)
}

// ListByUser returns userID's loans, most recent application first.
func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]loan.Loan, error) {
	out, err := u.loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func (u *Usecase) ListAll(ctx context.Context) ([]loan.Loan, error) {
	out, err := u.loans.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(ls []loan.Loan) {
	slices.SortStableFunc(ls, func(a, b loan.Loan) int { return b.AppliedAt.Compare(a.AppliedAt) })
}

func (u *Usecase) publish(ctx context.Context, typ string, payload any) {
	err := u.pub.Publish(ctx, event.Envelope{Type: typ, OccurredAt: u.now(), Payload: payload})
	if err != nil {
		u.log.Warn("event publish failed", zap.String("type", typ), zap.Error(err))
	}
}

// Payload is the event body shared by every loan event.
func Payload(l *loan.Loan, repaymentID string) event.LoanPayload {
	return event.LoanPayload{
		LoanID:           l.LoanID,
		UserID:           l.UserID,
		Status:           string(l.Status),
		Amount:           l.Amount.String(),
		EMIAmount:        l.EMIAmount.String(),
		RemainingBalance: l.RemainingBalance.String(),
		RepaymentID:      repaymentID,
	}
}
