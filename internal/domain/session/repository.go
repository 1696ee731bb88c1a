package session

import (
	"context"
	"time"
)

type Repository interface {
	Save(ctx context.Context, s *AuthState, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*AuthState, error)
	Delete(ctx context.Context, sessionID string) error
	// Clear drops every session. Data-reset utility only.
	Clear(ctx context.Context) error
}
