package approvalmock

import (
	"context"
	"errors"

	domain "sacco-backend/internal/domain/approval"
	domainLoan "sacco-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("approvalmock: method not implemented")

// Repo is a function-backed mock satisfying approval.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, a *domain.Approval) error
	GetByLoanAndStageFn func(ctx context.Context, loanID uint64, stage domainLoan.Stage) (*domain.Approval, error)
	ListByLoanIDFn      func(ctx context.Context, loanID uint64) ([]domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByLoanAndStage(ctx context.Context, loanID uint64, stage domainLoan.Stage) (*domain.Approval, error) {
	if m.GetByLoanAndStageFn != nil {
		return m.GetByLoanAndStageFn(ctx, loanID, stage)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Approval, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}
