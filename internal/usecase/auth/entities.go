package auth

import (
	"net/mail"
	"strings"

	"paylite-backend/internal/domain/apperr"
)

const MinPasswordLength = 8

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (in *RegisterInput) validate() error {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" {
		return apperr.Validation("email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.Validation("email is not a valid address")
	}
	if in.Name == "" {
		return apperr.Validation("name is required")
	}
	if len(in.Password) < MinPasswordLength {
		return apperr.Validation("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
