package uowmock

import (
	"context"
	"errors"

	"sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/uow"
)

var (
	_ uow.UnitOfWork = (*UoW)(nil)
	_ uow.UnitOfWork = (*Passthrough)(nil)
)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock satisfying uow.UnitOfWork.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

// Passthrough runs callbacks directly against a fixed Repos bundle, with no
// transaction semantics. The "lock" is just a GetByLoanIDForUpdate call on
// the bundled loan repo.
type Passthrough struct{ Repos uow.Repos }

func NewPassthrough(r uow.Repos) *Passthrough { return &Passthrough{Repos: r} }

func (p *Passthrough) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(p.Repos)
}

func (p *Passthrough) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	l, err := p.Repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(p.Repos, l)
}
