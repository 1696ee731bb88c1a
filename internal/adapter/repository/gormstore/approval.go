package gormstore

import (
	"context"

	"paylite-backend/internal/domain/apperr"
	approvalDomain "paylite-backend/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return apperr.Storage("create approval", r.db.WithContext(ctx).Create(a).Error)
}

func (r *ApprovalRepository) GetByLoanID(ctx context.Context, loanID string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error
	if err != nil {
		return nil, lookupErr("get approval by loan", err, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	err := r.db.WithContext(ctx).Where("approval_id = ?", approvalID).First(&out).Error
	if err != nil {
		return nil, lookupErr("get approval", err, approvalDomain.ErrNotFound)
	}
	return &out, nil
}
