package savingsmock

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domain "sacco-backend/internal/domain/savings"
)

var (
	_ domain.AccountReader       = (*Reader)(nil)
	_ domain.TransactionRecorder = (*Recorder)(nil)
)

var errUnimplemented = errors.New("savingsmock: method not implemented")

// Reader is a function-backed mock satisfying savings.AccountReader.
type Reader struct {
	GetByMemberIDFn func(ctx context.Context, memberID string) (*domain.Account, error)
	BalanceOfFn     func(ctx context.Context, memberID string) (decimal.Decimal, error)
}

func (m *Reader) GetByMemberID(ctx context.Context, memberID string) (*domain.Account, error) {
	if m.GetByMemberIDFn != nil {
		return m.GetByMemberIDFn(ctx, memberID)
	}
	return nil, errUnimplemented
}

func (m *Reader) BalanceOf(ctx context.Context, memberID string) (decimal.Decimal, error) {
	if m.BalanceOfFn != nil {
		return m.BalanceOfFn(ctx, memberID)
	}
	return decimal.Zero, errUnimplemented
}

// Recorder is a function-backed mock satisfying savings.TransactionRecorder.
// With no RecordFn it appends to Recorded so tests can assert the ledger.
type Recorder struct {
	RecordFn       func(ctx context.Context, tx *domain.Transaction) error
	ListByLoanIDFn func(ctx context.Context, loanID uint64) ([]domain.Transaction, error)

	Recorded []domain.Transaction
}

func (m *Recorder) Record(ctx context.Context, tx *domain.Transaction) error {
	if m.RecordFn != nil {
		return m.RecordFn(ctx, tx)
	}
	m.Recorded = append(m.Recorded, *tx)
	return nil
}

func (m *Recorder) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Transaction, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	out := make([]domain.Transaction, 0)
	for _, tx := range m.Recorded {
		if tx.LoanID != nil && *tx.LoanID == loanID {
			out = append(out, tx)
		}
	}
	return out, nil
}
