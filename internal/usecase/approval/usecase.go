package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	domainApproval "paylite-backend/internal/domain/approval"
	"paylite-backend/internal/domain/apperr"
	"paylite-backend/internal/domain/event"
	domainLoan "paylite-backend/internal/domain/loan"
	"paylite-backend/internal/domain/uow"
	"paylite-backend/internal/infrastructure/metrics"
	ucLoan "paylite-backend/internal/usecase/loan"
	"paylite-backend/pkg/clock"
	"paylite-backend/pkg/id"

	"go.uber.org/zap"
)

// Usecase is the manual review step for loans that were not auto-approved.
type Usecase struct {
	loanRepo     domainLoan.Repository
	approvalRepo domainApproval.Repository
	uow          uow.UnitOfWork
	log          *zap.Logger
	pub          event.Publisher
	metrics      metrics.Recorder
	now          func() time.Time
}

type Option func(*Usecase)

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithPublisher(p event.Publisher) Option { return func(u *Usecase) { u.pub = p } }

func WithMetrics(m metrics.Recorder) Option { return func(u *Usecase) { u.metrics = m } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// NewUsecase: pass both repos and a UoW for tx flows.
func NewUsecase(loans domainLoan.Repository, approvals domainApproval.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		loanRepo:     loans,
		approvalRepo: approvals,
		uow:          tx,
		log:          zap.NewNop(),
		pub:          event.Nop{},
		metrics:      metrics.Nop{},
		now:          clock.UTC,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Review records an admin decision on a Pending loan. Approval books the
// balance and schedule exactly as auto-approval would.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*ReviewDTO, error) {
	if u.uow == nil {
		return nil, domainLoan.ErrInvalidTransition
	}
	if !in.Decision.Valid() {
		return nil, domainApproval.ErrInvalidDecision
	}
	if strings.TrimSpace(in.ReviewerID) == "" {
		return nil, apperr.Validation("reviewer is required")
	}

	var dto *ReviewDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		// State guard: only pending → approved/rejected
		switch l.Status {
		case domainLoan.StatusPending:
		case domainLoan.StatusApproved:
			return domainLoan.ErrAlreadyApproved
		default:
			return domainLoan.ErrInvalidTransition
		}

		if _, err := r.Approvals.GetByLoanID(ctx, l.LoanID); err == nil {
			return domainLoan.ErrAlreadyApproved
		} else if !errors.Is(err, domainApproval.ErrNotFound) {
			return err
		}

		now := u.now()
		a := &domainApproval.Approval{
			ApprovalID: id.NewID32(),
			LoanID:     l.LoanID,
			ReviewerID: in.ReviewerID,
			Decision:   in.Decision,
			Note:       strings.TrimSpace(in.Note),
			DecidedAt:  now,
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}

		if in.Decision == domainApproval.DecisionApproved {
			ucLoan.Approve(l, now)
		} else {
			ucLoan.Reject(l)
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &ReviewDTO{Approval: a, Loan: l}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.RecordLoanReview(string(in.Decision))
	if err := u.pub.Publish(ctx, event.Envelope{
		Type:       event.LoanReviewed,
		OccurredAt: dto.Approval.DecidedAt,
		Payload:    ucLoan.Payload(dto.Loan, ""),
	}); err != nil {
		u.log.Warn("event publish failed", zap.String("type", event.LoanReviewed), zap.Error(err))
	}
	u.log.Info("loan reviewed",
		zap.String("loan_id", in.LoanID),
		zap.String("reviewer_id", in.ReviewerID),
		zap.String("decision", string(in.Decision)),
	)
	return dto, nil
}

// Queue lists loans still waiting for a decision, oldest application first.
func (u *Usecase) Queue(ctx context.Context) ([]domainLoan.Loan, error) {
	all, err := u.loanRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domainLoan.Loan, 0, len(all))
	for _, l := range all {
		if l.Status == domainLoan.StatusPending {
			out = append(out, l)
		}
	}
	return out, nil
}

func (u *Usecase) GetByLoanID(ctx context.Context, loanID string) (*domainApproval.Approval, error) {
	return u.approvalRepo.GetByLoanID(ctx, loanID)
}
