package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "sacco-backend/internal/domain/loan"
)

var decimalZero = decimal.Zero

type GuarantorInput struct {
	MemberID string          `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
}

type ApplyInput struct {
	MemberID   string           `json:"member_id"`
	LoanType   domain.Type      `json:"loan_type"`
	Principal  decimal.Decimal  `json:"principal_amount"`
	TermMonths int              `json:"term_months"`
	Purpose    string           `json:"purpose"`
	Guarantors []GuarantorInput `json:"guarantors,omitempty"`
}

type LoanDTO struct {
	LoanID           string          `json:"loan_id"`
	MemberID         string          `json:"member_id"`
	LoanType         domain.Type     `json:"loan_type"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	TermMonths       int             `json:"term_months"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Purpose          string          `json:"purpose"`
	Status           domain.Status   `json:"status"`
	ApprovalStage    domain.Stage    `json:"approval_stage"`
	ApplicationDate  time.Time       `json:"application_date"`
	ApprovalDate     *time.Time      `json:"approval_date,omitempty"`
	DisbursementDate *time.Time      `json:"disbursement_date,omitempty"`
	CompletionDate   *time.Time      `json:"completion_date,omitempty"`
}

type StatsDTO struct {
	Total              int             `json:"total"`
	Pending            int             `json:"pending"`
	Approved           int             `json:"approved"`
	Disbursed          int             `json:"disbursed"`
	Repaying           int             `json:"repaying"`
	Completed          int             `json:"completed"`
	TotalPrincipal     decimal.Decimal `json:"total_principal"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		MemberID:         l.MemberID,
		LoanType:         l.LoanType,
		PrincipalAmount:  l.PrincipalAmount,
		InterestRate:     l.InterestRate,
		TermMonths:       l.TermMonths,
		TotalInterest:    l.TotalInterest,
		TotalAmount:      l.TotalAmount,
		MonthlyPayment:   l.MonthlyPayment,
		RemainingBalance: l.RemainingBalance,
		Purpose:          l.Purpose,
		Status:           l.Status,
		ApprovalStage:    l.ApprovalStage,
		ApplicationDate:  l.ApplicationDate,
		ApprovalDate:     l.ApprovalDate,
		DisbursementDate: l.DisbursementDate,
		CompletionDate:   l.CompletionDate,
	}
}
