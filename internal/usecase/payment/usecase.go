package payment

import (
	"context"
	"slices"
	"time"

	"paylite-backend/internal/domain/event"
	"paylite-backend/internal/domain/transaction"
	"paylite-backend/internal/infrastructure/metrics"
	"paylite-backend/pkg/clock"
	"paylite-backend/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	repo    transaction.Repository
	log     *zap.Logger
	pub     event.Publisher
	metrics metrics.Recorder
	picker  Picker
	weights []Weighted
	now     func() time.Time
	delay   time.Duration
}

type Option func(*Usecase)

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithPublisher(p event.Publisher) Option { return func(u *Usecase) { u.pub = p } }

func WithMetrics(m metrics.Recorder) Option { return func(u *Usecase) { u.metrics = m } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// WithPicker fixes the random source behind the status draw.
func WithPicker(p Picker) Option { return func(u *Usecase) { u.picker = p } }

func WithWeights(w []Weighted) Option { return func(u *Usecase) { u.weights = w } }

// WithProcessingDelay sets the simulated gateway round trip.
func WithProcessingDelay(d time.Duration) Option { return func(u *Usecase) { u.delay = d } }

func NewUsecase(repo transaction.Repository, opts ...Option) *Usecase {
	u := &Usecase{
		repo:    repo,
		log:     zap.NewNop(),
		pub:     event.Nop{},
		metrics: metrics.Nop{},
		picker:  globalPicker{},
		weights: DefaultWeights,
		now:     clock.UTC,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// ProcessPayment runs one simulated payment for userID and stores the
// transaction with its final status. Every call is an independent draw.
func (u *Usecase) ProcessPayment(ctx context.Context, userID string, req PaymentRequest) (*transaction.Transaction, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	started := time.Now()
	if err := clock.Sleep(ctx, u.delay); err != nil {
		return nil, err
	}

	t := &transaction.Transaction{
		TransactionID: id.NewID32(),
		UserID:        userID,
		Amount:        req.Amount,
		Channel:       req.Channel,
		Description:   req.Description,
		ChannelRef:    req.ChannelRef,
		MerchantName:  req.MerchantName,
		Status:        DrawStatus(u.picker, u.weights),
		CreatedAt:     u.now(),
	}
	if err := u.repo.Create(ctx, t); err != nil {
		u.log.Error("payment not stored", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	u.metrics.RecordPayment(string(t.Status), time.Since(started))
	if err := u.pub.Publish(ctx, event.Envelope{
		Type:       event.PaymentProcessed,
		OccurredAt: t.CreatedAt,
		Payload: event.PaymentProcessedPayload{
			TransactionID: t.TransactionID,
			UserID:        t.UserID,
			Amount:        t.Amount.String(),
			Channel:       string(t.Channel),
			Status:        string(t.Status),
		},
	}); err != nil {
		u.log.Warn("event publish failed", zap.String("type", event.PaymentProcessed), zap.Error(err))
	}
	u.log.Info("payment processed",
		zap.String("transaction_id", t.TransactionID),
		zap.String("user_id", userID),
		zap.String("channel", string(t.Channel)),
		zap.String("status", string(t.Status)),
	)
	return t, nil
}

func (u *Usecase) Get(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	return u.repo.GetByTransactionID(ctx, transactionID)
}

// ListByUser returns userID's transactions, newest first.
func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	out, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

// ListAll is the admin view over every user's transactions, newest first.
func (u *Usecase) ListAll(ctx context.Context) ([]transaction.Transaction, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(ts []transaction.Transaction) {
	slices.SortStableFunc(ts, func(a, b transaction.Transaction) int { return b.CreatedAt.Compare(a.CreatedAt) })
}
