package approval

import (
	domainApproval "paylite-backend/internal/domain/approval"
	domainLoan "paylite-backend/internal/domain/loan"
)

type ReviewInput struct {
	LoanID     string
	ReviewerID string // admin user id
	Decision   domainApproval.Decision
	Note       string
}

type ReviewDTO struct {
	Approval *domainApproval.Approval `json:"approval"`
	Loan     *domainLoan.Loan         `json:"loan"`
}
