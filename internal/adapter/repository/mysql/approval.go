package mysql

import (
	"context"

	"gorm.io/gorm"

	approvalDomain "sacco-backend/internal/domain/approval"
	loanDomain "sacco-backend/internal/domain/loan"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) GetByLoanAndStage(ctx context.Context, loanID uint64, stage loanDomain.Stage) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND stage = ?", loanID, stage).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
