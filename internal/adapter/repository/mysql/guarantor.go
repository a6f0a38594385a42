package mysql

import (
	"context"

	"gorm.io/gorm"

	guarantorDomain "sacco-backend/internal/domain/guarantor"
)

type GuarantorRepository struct{ db *gorm.DB }

func NewGuarantorRepository(db *gorm.DB) *GuarantorRepository { return &GuarantorRepository{db: db} }

func (r *GuarantorRepository) Create(ctx context.Context, g *guarantorDomain.Guarantor) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GuarantorRepository) Save(ctx context.Context, g *guarantorDomain.Guarantor) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GuarantorRepository) GetByGuarantorID(ctx context.Context, guarantorID string) (*guarantorDomain.Guarantor, error) {
	var out guarantorDomain.Guarantor
	res := r.db.WithContext(ctx).Where("guarantor_id = ?", guarantorID).First(&out)
	return &out, res.Error
}

func (r *GuarantorRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]guarantorDomain.Guarantor, error) {
	var out []guarantorDomain.Guarantor
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *GuarantorRepository) CountByLoanAndStatus(ctx context.Context, loanID uint64, status guarantorDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&guarantorDomain.Guarantor{}).
		Where("loan_id = ? AND status = ?", loanID, status).
		Count(&n)
	return n, res.Error
}
