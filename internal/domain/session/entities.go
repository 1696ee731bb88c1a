package session

import (
	"time"

	"paylite-backend/internal/domain/apperr"
	"paylite-backend/internal/domain/user"
)

var ErrNotFound = apperr.Kind(apperr.ErrUnauthorized, "session not found or expired")

// AuthState is the current login of one client. SessionID is the token's jti.
type AuthState struct {
	SessionID     string    `json:"session_id"`
	Token         string    `json:"token"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          user.Role `json:"role"`
	Authenticated bool      `json:"authenticated"`
	IssuedAt      time.Time `json:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func (s *AuthState) IsAdmin() bool { return s != nil && s.Role == user.RoleAdmin }
