package approval

import (
	"errors"
	"time"

	"sacco-backend/internal/domain/loan"
)

var ErrNotFound = errors.New("approval not found")

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Approval is one reviewing decision. Rows are append-only: every Decide
// call that passes its guards writes exactly one, rejections included.
type Approval struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ApprovalID string `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approvals_approval_id"`
	// FK to loans.id (numeric)
	LoanID       uint64    `gorm:"column:loan_id;not null;index;uniqueIndex:ux_approvals_loan_stage,priority:1"`
	Stage        loan.Stage `gorm:"column:stage;type:varchar(32);not null;uniqueIndex:ux_approvals_loan_stage,priority:2"`
	ApproverID   string    `gorm:"column:approver_id;type:char(32);not null"`
	ApproverRole loan.Role `gorm:"column:approver_role;type:varchar(32);not null"`
	Decision     Decision  `gorm:"column:decision;type:enum('approved','rejected');not null"`
	Remarks      string    `gorm:"column:remarks;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Approval) TableName() string { return "loan_approvals" }
