package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"paylite-backend/internal/domain/apperr"
	"paylite-backend/internal/domain/session"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionRepository keeps one JSON document per session under
// "session:<jti>". Redis expiry is the session lifetime.
type SessionRepository struct{ rdb *redis.Client }

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func sessionKey(id string) string { return sessionPrefix + id }

func (r *SessionRepository) Save(ctx context.Context, s *session.AuthState, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return apperr.Storage("encode session", err)
	}
	return apperr.Storage("save session", r.rdb.Set(ctx, sessionKey(s.SessionID), payload, ttl).Err())
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*session.AuthState, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage("get session", err)
	}
	var s session.AuthState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, apperr.Storage("decode session", err)
	}
	return &s, nil
}

// Delete is a no-op for an unknown session.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return apperr.Storage("delete session", r.rdb.Del(ctx, sessionKey(sessionID)).Err())
}

// Clear walks the keyspace with SCAN so it never blocks redis the way KEYS would.
func (r *SessionRepository) Clear(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, sessionPrefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := r.rdb.Del(ctx, batch...).Err(); err != nil {
				return apperr.Storage("clear sessions", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return apperr.Storage("scan sessions", err)
	}
	if len(batch) > 0 {
		return apperr.Storage("clear sessions", r.rdb.Del(ctx, batch...).Err())
	}
	return nil
}
