package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	savingsDomain "sacco-backend/internal/domain/savings"
)

// SavingsRepository reads accounts owned by the savings subsystem and
// appends loan-side ledger transactions. It implements both
// savings.AccountReader and savings.TransactionRecorder.
type SavingsRepository struct{ db *gorm.DB }

func NewSavingsRepository(db *gorm.DB) *SavingsRepository { return &SavingsRepository{db: db} }

func (r *SavingsRepository) GetByMemberID(ctx context.Context, memberID string) (*savingsDomain.Account, error) {
	var out savingsDomain.Account
	res := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&out)
	return &out, res.Error
}

func (r *SavingsRepository) BalanceOf(ctx context.Context, memberID string) (decimal.Decimal, error) {
	acc, err := r.GetByMemberID(ctx, memberID)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

func (r *SavingsRepository) Record(ctx context.Context, tx *savingsDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *SavingsRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]savingsDomain.Transaction, error) {
	var out []savingsDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
