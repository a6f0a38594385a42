package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the rest of the enclosing
	// transaction. Only meaningful inside a unit of work.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetPendingLoanByMemberID(ctx context.Context, memberID string) (*Loan, error)
	ListByMemberID(ctx context.Context, memberID string) ([]Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
