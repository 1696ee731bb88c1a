package sessionmock

import (
	"context"
	"sync"
	"time"

	domain "paylite-backend/internal/domain/session"
)

var _ domain.Repository = (*Store)(nil)

// Store is an in-memory session.Repository for usecase and handler tests.
// TTLs are recorded but never expire anything.
type Store struct {
	mu   sync.Mutex
	data map[string]domain.AuthState
	TTLs map[string]time.Duration
	// Err, when set, is returned from every call.
	Err error
}

func New() *Store {
	return &Store{data: map[string]domain.AuthState{}, TTLs: map[string]time.Duration{}}
}

func (s *Store) Save(_ context.Context, st *domain.AuthState, ttl time.Duration) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[st.SessionID] = *st
	s.TTLs[st.SessionID] = ttl
	return nil
}

func (s *Store) Get(_ context.Context, sessionID string) (*domain.AuthState, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *Store) Clear(context.Context) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string]domain.AuthState{}
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
