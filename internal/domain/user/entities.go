package user

import (
	"time"

	"paylite-backend/internal/domain/apperr"
)

var (
	ErrNotFound   = apperr.Kind(apperr.ErrNotFound, "user not found")
	ErrEmailTaken = apperr.Kind(apperr.ErrConflict, "email already registered")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Table: users. Email is stored lowercased so the unique index is case-insensitive.
type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Email        string    `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	Name         string    `gorm:"size:100" json:"name"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Role         Role      `gorm:"size:16" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
