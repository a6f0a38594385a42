package repayment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domainGuarantor "sacco-backend/internal/domain/guarantor"
	domainLoan "sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/savings"
	"sacco-backend/internal/domain/uow"
	"sacco-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	// When set, disbursement requires every guarantor to have answered and
	// none to still be pending.
	requireGuarantorAcceptance bool
}

func NewUsecase(tx uow.UnitOfWork, requireGuarantorAcceptance bool) *Usecase {
	return &Usecase{uow: tx, requireGuarantorAcceptance: requireGuarantorAcceptance}
}

// Disburse pays out an approved loan. Accountant only. Sets the
// disbursement date, opens the repayment balance at the full total, and
// posts the matching ledger entry, all in one transaction.
func (u *Usecase) Disburse(ctx context.Context, loanID string, role domainLoan.Role) (*DisbursementDTO, error) {
	if role != domainLoan.RoleAccountant {
		return nil, fmt.Errorf("%w: disbursement requires role %s", domainLoan.ErrUnauthorized, domainLoan.RoleAccountant)
	}

	var dto *DisbursementDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusApproved {
			return domainLoan.ErrStaleTransition
		}
		if u.requireGuarantorAcceptance {
			pending, err := r.Guarantors.CountByLoanAndStatus(ctx, l.ID, domainGuarantor.StatusPending)
			if err != nil {
				return err
			}
			if pending > 0 {
				return domainLoan.ErrGuarantorsPending
			}
		}

		now := time.Now().UTC()
		l.Status = domainLoan.StatusDisbursed
		l.DisbursementDate = &now
		l.RemainingBalance = l.TotalAmount
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		tx := &savings.Transaction{
			TransactionID: id.NewID32(),
			MemberID:      l.MemberID,
			Type:          savings.TxLoanDisbursement,
			Amount:        l.PrincipalAmount,
			LoanID:        &l.ID,
		}
		if err := r.Transactions.Record(ctx, tx); err != nil {
			return err
		}

		dto = &DisbursementDTO{
			LoanID:           l.LoanID,
			TransactionID:    tx.TransactionID,
			Amount:           tx.Amount,
			RemainingBalance: l.RemainingBalance,
			Status:           l.Status,
			DisbursedAt:      now,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// PostRepayment applies a repayment to the outstanding balance. The balance
// never goes below zero; an overpayment applies only the remainder. Reaching
// zero completes the loan.
func (u *Usecase) PostRepayment(ctx context.Context, loanID string, amount decimal.Decimal) (*RepaymentDTO, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: repayment amount must be positive", domainLoan.ErrInvalidInput)
	}

	var dto *RepaymentDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusDisbursed && l.Status != domainLoan.StatusRepaying {
			return domainLoan.ErrStaleTransition
		}

		applied := amount
		if applied.GreaterThan(l.RemainingBalance) {
			applied = l.RemainingBalance
		}

		now := time.Now().UTC()
		l.RemainingBalance = l.RemainingBalance.Sub(applied)
		if l.RemainingBalance.IsZero() {
			l.Status = domainLoan.StatusCompleted
			l.CompletionDate = &now
		} else {
			l.Status = domainLoan.StatusRepaying
		}
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		tx := &savings.Transaction{
			TransactionID: id.NewID32(),
			MemberID:      l.MemberID,
			Type:          savings.TxLoanRepayment,
			Amount:        applied,
			LoanID:        &l.ID,
		}
		if err := r.Transactions.Record(ctx, tx); err != nil {
			return err
		}

		dto = &RepaymentDTO{
			LoanID:           l.LoanID,
			TransactionID:    tx.TransactionID,
			AmountApplied:    applied,
			RemainingBalance: l.RemainingBalance,
			Status:           l.Status,
			PostedAt:         now,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// MarkDefaulted moves a loan with missed payments to the terminal defaulted
// state. Staff action (accountant or admin).
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID string, role domainLoan.Role) error {
	if role != domainLoan.RoleAccountant && role != domainLoan.RoleAdmin {
		return fmt.Errorf("%w: marking default requires accountant or admin", domainLoan.ErrUnauthorized)
	}

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusDisbursed && l.Status != domainLoan.StatusRepaying {
			return domainLoan.ErrStaleTransition
		}
		l.Status = domainLoan.StatusDefaulted
		l.StatusUpdatedAt = time.Now().UTC()
		return r.Loans.Save(ctx, l)
	})
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return domainLoan.ErrNotFound
	}
	return err
}
