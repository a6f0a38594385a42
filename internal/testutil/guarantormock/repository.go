package guarantormock

import (
	"context"
	"errors"

	domain "sacco-backend/internal/domain/guarantor"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("guarantormock: method not implemented")

// Repo is a function-backed mock satisfying guarantor.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, g *domain.Guarantor) error
	GetByGuarantorIDFn     func(ctx context.Context, guarantorID string) (*domain.Guarantor, error)
	ListByLoanIDFn         func(ctx context.Context, loanID uint64) ([]domain.Guarantor, error)
	CountByLoanAndStatusFn func(ctx context.Context, loanID uint64, status domain.Status) (int64, error)
	SaveFn                 func(ctx context.Context, g *domain.Guarantor) error
}

func (m *Repo) Create(ctx context.Context, g *domain.Guarantor) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return nil
}

func (m *Repo) GetByGuarantorID(ctx context.Context, guarantorID string) (*domain.Guarantor, error) {
	if m.GetByGuarantorIDFn != nil {
		return m.GetByGuarantorIDFn(ctx, guarantorID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Guarantor, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) CountByLoanAndStatus(ctx context.Context, loanID uint64, status domain.Status) (int64, error) {
	if m.CountByLoanAndStatusFn != nil {
		return m.CountByLoanAndStatusFn(ctx, loanID, status)
	}
	return 0, nil
}

func (m *Repo) Save(ctx context.Context, g *domain.Guarantor) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, g)
	}
	return nil
}
