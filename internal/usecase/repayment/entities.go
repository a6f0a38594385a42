package repayment

import (
	"time"

	"github.com/shopspring/decimal"

	domainLoan "sacco-backend/internal/domain/loan"
)

type DisbursementDTO struct {
	LoanID           string            `json:"loan_id"`
	TransactionID    string            `json:"transaction_id"`
	Amount           decimal.Decimal   `json:"amount"`
	RemainingBalance decimal.Decimal   `json:"remaining_balance"`
	Status           domainLoan.Status `json:"status"`
	DisbursedAt      time.Time         `json:"disbursed_at"`
}

type RepaymentDTO struct {
	LoanID           string            `json:"loan_id"`
	TransactionID    string            `json:"transaction_id"`
	AmountApplied    decimal.Decimal   `json:"amount_applied"`
	RemainingBalance decimal.Decimal   `json:"remaining_balance"`
	Status           domainLoan.Status `json:"status"`
	PostedAt         time.Time         `json:"posted_at"`
}
