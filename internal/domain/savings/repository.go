package savings

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountReader is the read-only view the loan core has of the savings
// subsystem.
type AccountReader interface {
	GetByMemberID(ctx context.Context, memberID string) (*Account, error)
	BalanceOf(ctx context.Context, memberID string) (decimal.Decimal, error)
}

// TransactionRecorder appends ledger entries; the loan core never updates
// or deletes them.
type TransactionRecorder interface {
	Record(ctx context.Context, tx *Transaction) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]Transaction, error)
}
