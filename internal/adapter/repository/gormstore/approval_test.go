package gormstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"paylite-backend/internal/domain/apperr"
	approvalDomain "paylite-backend/internal/domain/approval"
	"paylite-backend/internal/testutil/dbtest"
)

func makeApproval(approvalID, loanID string, when time.Time) *approvalDomain.Approval {
	return &approvalDomain.Approval{
		ApprovalID: approvalID,
		LoanID:     loanID,
		ReviewerID: "admin-1",
		Decision:   approvalDomain.DecisionApproved,
		Note:       "verified income",
		DecidedAt:  when.UTC(),
	}
}

func TestApproval_CreateAndGet(t *testing.T) {
	repo := NewApprovalRepository(dbtest.Open(t))
	ctx := context.Background()

	now := time.Now().UTC()
	if err := repo.Create(ctx, makeApproval("APR-001", "LN-777", now)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	gotByLoan, err := repo.GetByLoanID(ctx, "LN-777")
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if gotByLoan.ApprovalID != "APR-001" || gotByLoan.Decision != approvalDomain.DecisionApproved {
		t.Errorf("unexpected row by loan: %+v", gotByLoan)
	}
	if !gotByLoan.DecidedAt.Equal(now) {
		t.Errorf("DecidedAt not preserved: got=%v want=%v", gotByLoan.DecidedAt, now)
	}

	gotByID, err := repo.GetByApprovalID(ctx, "APR-001")
	if err != nil {
		t.Fatalf("GetByApprovalID: %v", err)
	}
	if gotByID.LoanID != "LN-777" {
		t.Errorf("unexpected row by id: %+v", gotByID)
	}
}

func TestApproval_NotFound(t *testing.T) {
	repo := NewApprovalRepository(dbtest.Open(t))
	ctx := context.Background()

	if _, err := repo.GetByLoanID(ctx, "LN-999"); !errors.Is(err, approvalDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for GetByLoanID, got %v", err)
	}
	if _, err := repo.GetByApprovalID(ctx, "NOPE"); !errors.Is(err, approvalDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for GetByApprovalID, got %v", err)
	}
}

func TestApproval_OnePerLoan(t *testing.T) {
	repo := NewApprovalRepository(dbtest.Open(t))
	ctx := context.Background()

	if err := repo.Create(ctx, makeApproval("APR-A", "LN-1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, makeApproval("APR-B", "LN-1", time.Now())); !errors.Is(err, apperr.ErrStorage) {
		t.Fatalf("second approval for same loan: want storage error, got %v", err)
	}
}
