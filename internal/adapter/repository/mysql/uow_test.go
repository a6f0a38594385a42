package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	loanDomain "sacco-backend/internal/domain/loan"
	savingsDomain "sacco-backend/internal/domain/savings"
	"sacco-backend/internal/domain/uow"
	"sacco-backend/pkg/id"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	apprRepo := NewApprovalRepository(db)

	loanID := id.NewID32()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		// Create loan, then approval referencing loan numeric ID
		l := makeLoan(loanID, "11111111111111111111111111111111")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("loan auto ID not set")
		}
		return r.Approvals.Create(ctx, makeDecision(l.ID, loanDomain.StageChairperson, loanDomain.RoleChairperson))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	got, err := loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	if _, err := apprRepo.GetByLoanAndStage(ctx, got.ID, loanDomain.StageChairperson); err != nil {
		t.Fatalf("approval not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	sentinel := errors.New("boom")
	loanID := id.NewID32()

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(loanID, "22222222222222222222222222222222")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Approvals.Create(ctx, makeDecision(l.ID, loanDomain.StageChairperson, loanDomain.RoleChairperson)); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// None should exist after rollback
	if _, err := loanRepo.GetByLoanID(ctx, loanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	// Seed an approved loan awaiting disbursement (outside tx)
	loanID := id.NewID32()
	seed := makeLoan(loanID, "33333333333333333333333333333333")
	seed.Status = loanDomain.StatusApproved
	seed.ApprovalStage = loanDomain.StageCompleted
	if err := loanRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	// WithinLoanTx fetches the locked loan and passes it to fn
	if err := guow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.LoanID != loanID || l.Status != loanDomain.StatusApproved {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}

		now := time.Now().UTC()
		l.Status = loanDomain.StatusDisbursed
		l.RemainingBalance = l.TotalAmount
		l.DisbursementDate = &now
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		return r.Transactions.Record(ctx, &savingsDomain.Transaction{
			TransactionID: id.NewID32(),
			MemberID:      l.MemberID,
			Type:          savingsDomain.TxLoanDisbursement,
			Amount:        l.PrincipalAmount,
			LoanID:        &l.ID,
		})
	}); err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	// Verify changes
	got, err := loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID post-commit: %v", err)
	}
	if got.Status != loanDomain.StatusDisbursed {
		t.Fatalf("status not updated, got=%s", got.Status)
	}
	if !got.RemainingBalance.Equal(decimal.NewFromInt(59_000)) {
		t.Fatalf("remaining balance = %s, want 59000", got.RemainingBalance)
	}
	txs, err := NewSavingsRepository(db).ListByLoanID(ctx, got.ID)
	if err != nil || len(txs) != 1 {
		t.Fatalf("ledger rows = %d (err %v), want 1", len(txs), err)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	loanID := id.NewID32()
	seed := makeLoan(loanID, "44444444444444444444444444444444")
	if err := loanRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	sentinel := errors.New("stop")

	_ = guow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := r.Approvals.Create(ctx, makeDecision(l.ID, loanDomain.StageChairperson, loanDomain.RoleChairperson)); err != nil {
			return err
		}
		l.Status = loanDomain.StatusApproved
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// After rollback: status unchanged, approval absent
	got, err := loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("post-rollback GetByLoanID: %v", err)
	}
	if got.Status != loanDomain.StatusPendingApproval {
		t.Fatalf("expected pending_approval after rollback, got %s", got.Status)
	}
	if _, err := NewApprovalRepository(db).GetByLoanAndStage(ctx, got.ID, loanDomain.StageChairperson); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected approval absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
