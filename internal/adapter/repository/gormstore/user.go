package gormstore

import (
	"context"

	"paylite-backend/internal/domain/apperr"
	userDomain "paylite-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return apperr.Storage("create user", r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error
	if err != nil {
		return nil, lookupErr("get user", err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&out).Error
	if err != nil {
		return nil, lookupErr("get user by email", err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]userDomain.User, error) {
	var out []userDomain.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, apperr.Storage("list users", err)
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userDomain.User{}).Count(&n).Error; err != nil {
		return 0, apperr.Storage("count users", err)
	}
	return n, nil
}
