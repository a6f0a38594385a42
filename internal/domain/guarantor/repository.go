package guarantor

import "context"

type Repository interface {
	Create(ctx context.Context, g *Guarantor) error
	GetByGuarantorID(ctx context.Context, guarantorID string) (*Guarantor, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Guarantor, error)
	// CountByLoanAndStatus supports the disbursement precondition without
	// loading every row.
	CountByLoanAndStatus(ctx context.Context, loanID uint64, status Status) (int64, error)
	Save(ctx context.Context, g *Guarantor) error
}
