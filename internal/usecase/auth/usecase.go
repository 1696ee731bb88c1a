package auth

import (
	"context"
	"errors"
	"time"

	"paylite-backend/internal/domain/apperr"
	"paylite-backend/internal/domain/session"
	"paylite-backend/internal/domain/uow"
	"paylite-backend/internal/domain/user"
	"paylite-backend/pkg/clock"
	"paylite-backend/pkg/id"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = apperr.Kind(apperr.ErrUnauthorized, "invalid email or password")

type Usecase struct {
	users    user.Repository
	sessions session.Repository
	uow      uow.UnitOfWork
	tokens   *TokenIssuer
	cost     int
	log      *zap.Logger
	now      func() time.Time
}

type Option func(*Usecase)

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option { return func(u *Usecase) { u.cost = cost } }

func NewUsecase(users user.Repository, sessions session.Repository, tx uow.UnitOfWork, secret string, ttl time.Duration, opts ...Option) *Usecase {
	u := &Usecase{
		users:    users,
		sessions: sessions,
		uow:      tx,
		cost:     bcrypt.DefaultCost,
		log:      zap.NewNop(),
		now:      clock.UTC,
	}
	for _, o := range opts {
		o(u)
	}
	u.tokens = NewTokenIssuer(secret, ttl, u.now)
	return u
}

// Register creates the account and logs it in. The first account ever
// created is the admin; the count and insert share one transaction.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*session.AuthState, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password, u.cost)
	if err != nil {
		return nil, err
	}

	acct := &user.User{
		UserID:       id.NewID32(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         user.RoleUser,
		CreatedAt:    u.now(),
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		switch _, err := r.Users.GetByEmail(ctx, acct.Email); {
		case err == nil:
			return user.ErrEmailTaken
		case !errors.Is(err, user.ErrNotFound):
			return err
		}
		n, err := r.Users.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			acct.Role = user.RoleAdmin
		}
		return r.Users.Create(ctx, acct)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("user registered", zap.String("user_id", acct.UserID), zap.String("role", string(acct.Role)))
	return u.startSession(ctx, acct)
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*session.AuthState, error) {
	acct, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !verifyPassword(acct.PasswordHash, password) {
		u.log.Info("login rejected", zap.String("user_id", acct.UserID))
		return nil, ErrInvalidCredentials
	}
	return u.startSession(ctx, acct)
}

// Logout drops the session; the token stops authenticating immediately.
func (u *Usecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Delete(ctx, sessionID)
}

// Authenticate verifies raw and returns the live session behind it.
func (u *Usecase) Authenticate(ctx context.Context, raw string) (*session.AuthState, error) {
	claims, err := u.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	st, err := u.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if st.UserID != claims.Subject {
		return nil, ErrInvalidToken
	}
	return st, nil
}

func (u *Usecase) Me(ctx context.Context, userID string) (*user.User, error) {
	return u.users.GetByUserID(ctx, userID)
}

func (u *Usecase) ListUsers(ctx context.Context) ([]user.User, error) {
	return u.users.List(ctx)
}

func (u *Usecase) startSession(ctx context.Context, acct *user.User) (*session.AuthState, error) {
	sid := id.NewID32()
	token, claims, err := u.tokens.Issue(acct, sid)
	if err != nil {
		return nil, err
	}
	st := &session.AuthState{
		SessionID:     sid,
		Token:         token,
		UserID:        acct.UserID,
		Email:         acct.Email,
		Name:          acct.Name,
		Role:          acct.Role,
		Authenticated: true,
		IssuedAt:      claims.IssuedAt.Time,
		ExpiresAt:     claims.ExpiresAt.Time,
	}
	if err := u.sessions.Save(ctx, st, u.tokens.TTL()); err != nil {
		return nil, err
	}
	return st, nil
}
