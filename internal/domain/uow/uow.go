package uow

import (
	"context"

	"sacco-backend/internal/domain/approval"
	"sacco-backend/internal/domain/guarantor"
	"sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/savings"
)

type Repos struct {
	Loans        loan.Repository
	Approvals    approval.Repository
	Guarantors   guarantor.Repository
	Transactions savings.TransactionRecorder
}

// UnitOfWork runs a set of repository calls as one transaction. Every
// lifecycle transition (decide, disburse, repay, default) goes through
// WithinLoanTx so the status update and its audit/ledger rows commit or
// fail together.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up-front, then passes it in.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
