package approval

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	domainApproval "sacco-backend/internal/domain/approval"
	domainLoan "sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/uow"
	"sacco-backend/pkg/id"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type Usecase struct {
	loanRepo     domainLoan.Repository
	approvalRepo domainApproval.Repository
	uow          uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, approvals domainApproval.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loanRepo: loans, approvalRepo: approvals, uow: tx}
}

// Decide records one reviewing decision for one stage. The audit row and the
// loan update commit in the same row-locked transaction, so of two
// concurrent decisions for the same stage exactly one succeeds and the other
// sees ErrStaleTransition.
//
// An approval at the final stage moves the loan to approved; a rejection at
// any stage terminates it. Both still append the audit row.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*DecisionDTO, error) {
	if !reHex32.MatchString(in.ApproverID) {
		return nil, fmt.Errorf("%w: approver id must be 32-char hex", domainLoan.ErrInvalidInput)
	}
	if in.Decision != domainApproval.DecisionApproved && in.Decision != domainApproval.DecisionRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", domainLoan.ErrInvalidInput)
	}
	required, ok := domainLoan.RequiredRole(in.Stage)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a reviewing stage", domainLoan.ErrInvalidInput, in.Stage)
	}
	if in.Role != required {
		return nil, fmt.Errorf("%w: stage %s requires role %s", domainLoan.ErrUnauthorized, in.Stage, required)
	}

	var dto *DecisionDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPendingApproval || l.ApprovalStage != in.Stage {
			return domainLoan.ErrStaleTransition
		}

		// Belt-and-braces under the row lock; the DB uniqueness on
		// (loan, stage) catches anything that slips past.
		if _, err := r.Approvals.GetByLoanAndStage(ctx, l.ID, in.Stage); err == nil {
			return domainLoan.ErrStaleTransition
		} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, domainApproval.ErrNotFound) {
			return err
		}

		now := time.Now().UTC()
		a := &domainApproval.Approval{
			ApprovalID:   id.NewID32(),
			LoanID:       l.ID,
			Stage:        in.Stage,
			ApproverID:   in.ApproverID,
			ApproverRole: in.Role,
			Decision:     in.Decision,
			Remarks:      in.Remarks,
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}

		switch in.Decision {
		case domainApproval.DecisionRejected:
			l.Status = domainLoan.StatusRejected
		case domainApproval.DecisionApproved:
			if domainLoan.FinalStage(in.Stage) {
				l.Status = domainLoan.StatusApproved
				l.ApprovalStage = domainLoan.StageCompleted
				l.ApprovalDate = &now
			} else {
				l.ApprovalStage = domainLoan.NextStage(in.Stage)
			}
		}
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &DecisionDTO{
			ApprovalID: a.ApprovalID,
			LoanID:     l.LoanID,
			Stage:      in.Stage,
			Decision:   in.Decision,
			Remarks:    in.Remarks,
			LoanStatus: l.Status,
			NextStage:  l.ApprovalStage,
			DecidedAt:  now,
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

// History returns the audit trail for a loan in decision order.
func (u *Usecase) History(ctx context.Context, loanID string) ([]ApprovalDTO, error) {
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	rows, err := u.approvalRepo.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ApprovalDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, ApprovalDTO{
			ApprovalID:   a.ApprovalID,
			Stage:        a.Stage,
			ApproverID:   a.ApproverID,
			ApproverRole: a.ApproverRole,
			Decision:     a.Decision,
			Remarks:      a.Remarks,
			CreatedAt:    a.CreatedAt,
		})
	}
	return out, nil
}
