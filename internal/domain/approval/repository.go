package approval

import (
	"context"

	"sacco-backend/internal/domain/loan"
)

type Repository interface {
	// Create appends a decision row. The DB uniqueness on (loan, stage)
	// backs up the in-transaction stage guard.
	Create(ctx context.Context, a *Approval) error

	// GetByLoanAndStage returns the decision recorded for a stage, if any.
	GetByLoanAndStage(ctx context.Context, loanID uint64, stage loan.Stage) (*Approval, error)

	// ListByLoanID returns all decisions for a loan in creation order.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Approval, error)
}
