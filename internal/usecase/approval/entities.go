package approval

import (
	"time"

	domainApproval "sacco-backend/internal/domain/approval"
	domainLoan "sacco-backend/internal/domain/loan"
)

type DecideInput struct {
	LoanID     string
	Stage      domainLoan.Stage // the stage the reviewer is deciding
	ApproverID string           // 32-char hex
	Role       domainLoan.Role
	Decision   domainApproval.Decision
	Remarks    string
}

type DecisionDTO struct {
	ApprovalID string                  `json:"approval_id"`
	LoanID     string                  `json:"loan_id"`
	Stage      domainLoan.Stage        `json:"stage"`
	Decision   domainApproval.Decision `json:"decision"`
	Remarks    string                  `json:"remarks,omitempty"`
	// Loan state after the decision committed.
	LoanStatus domainLoan.Status `json:"loan_status"`
	NextStage  domainLoan.Stage  `json:"next_stage"`
	DecidedAt  time.Time         `json:"decided_at"`
}

type ApprovalDTO struct {
	ApprovalID   string                  `json:"approval_id"`
	Stage        domainLoan.Stage        `json:"stage"`
	ApproverID   string                  `json:"approver_id"`
	ApproverRole domainLoan.Role         `json:"approver_role"`
	Decision     domainApproval.Decision `json:"decision"`
	Remarks      string                  `json:"remarks,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}
