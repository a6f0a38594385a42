package loan

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	domain "sacco-backend/internal/domain/loan"
	domainGuarantor "sacco-backend/internal/domain/guarantor"
	"sacco-backend/internal/domain/savings"
	"sacco-backend/internal/domain/uow"
	"sacco-backend/internal/usecase/eligibility"
	"sacco-backend/internal/usecase/loancalc"
	"sacco-backend/pkg/id"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

const (
	minPurposeLen = 10
	maxPurposeLen = 500
)

type Usecase struct {
	repo       domain.Repository
	guarantors domainGuarantor.Repository
	savings    savings.AccountReader
	assessor   *eligibility.Assessor
	uow        uow.UnitOfWork
	policy     domain.PolicyTable
}

func NewUsecase(repo domain.Repository, guarantors domainGuarantor.Repository, sav savings.AccountReader, assessor *eligibility.Assessor, tx uow.UnitOfWork, policy domain.PolicyTable) *Usecase {
	if policy == nil {
		policy = domain.DefaultPolicyTable()
	}
	return &Usecase{repo: repo, guarantors: guarantors, savings: sav, assessor: assessor, uow: tx, policy: policy}
}

// Apply validates the request against policy, computes the repayment
// schedule once, and creates the loan pending approval at the chairperson
// stage. Guarantor rows are created in the same transaction.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if !reHex32.MatchString(in.MemberID) {
		return nil, fmt.Errorf("%w: member id must be 32-char hex", domain.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(in.Purpose); n < minPurposeLen || n > maxPurposeLen {
		return nil, fmt.Errorf("%w: purpose must be %d-%d characters", domain.ErrInvalidInput, minPurposeLen, maxPurposeLen)
	}
	for _, g := range in.Guarantors {
		if !reHex32.MatchString(g.MemberID) {
			return nil, fmt.Errorf("%w: guarantor member id must be 32-char hex", domain.ErrInvalidInput)
		}
		if g.Amount.LessThanOrEqual(decimalZero) {
			return nil, fmt.Errorf("%w: guaranteed amount must be positive", domain.ErrInvalidInput)
		}
	}

	sched, rate, err := loancalc.ComputeForType(u.policy, in.LoanType, in.Principal, in.TermMonths)
	if err != nil {
		return nil, err
	}

	// Block if the member already has a loan awaiting approval.
	pending, err := u.repo.GetPendingLoanByMemberID(ctx, in.MemberID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: member %s already has a pending loan: %s", domain.ErrPolicyViolation, in.MemberID, pending.LoanID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	l := &domain.Loan{
		LoanID:          id.NewID32(),
		MemberID:        in.MemberID,
		LoanType:        in.LoanType,
		PrincipalAmount: in.Principal,
		InterestRate:    rate,
		TermMonths:      in.TermMonths,
		TotalInterest:   sched.TotalInterest,
		TotalAmount:     sched.TotalAmount,
		MonthlyPayment:  sched.MonthlyPayment,
		Purpose:         in.Purpose,
		Status:          domain.StatusPendingApproval,
		ApprovalStage:   domain.StageChairperson,
		ApplicationDate: now,
		StatusUpdatedAt: now,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		for _, g := range in.Guarantors {
			gr := &domainGuarantor.Guarantor{
				GuarantorID:      id.NewID32(),
				LoanID:           l.ID,
				MemberID:         g.MemberID,
				GuaranteedAmount: g.Amount,
				Status:           domainGuarantor.StatusPending,
			}
			if err := r.Guarantors.Create(ctx, gr); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListByMember(ctx context.Context, memberID string) ([]LoanDTO, error) {
	if !reHex32.MatchString(memberID) {
		return nil, fmt.Errorf("%w: member id must be 32-char hex", domain.ErrInvalidInput)
	}
	ls, err := u.repo.ListByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

// ListPending returns the approval queue, optionally narrowed to one stage.
func (u *Usecase) ListPending(ctx context.Context, stage domain.Stage) ([]LoanDTO, error) {
	ls, err := u.repo.ListByStatus(ctx, domain.StatusPendingApproval)
	if err != nil {
		return nil, err
	}
	if stage == "" {
		return toDTOs(ls), nil
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		if ls[i].ApprovalStage == stage {
			out = append(out, *toDTO(&ls[i]))
		}
	}
	return out, nil
}

func (u *Usecase) ListByStatus(ctx context.Context, status domain.Status) ([]LoanDTO, error) {
	ls, err := u.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

// Stats aggregates the dashboard figures: per-status counts, total principal
// across all loans, and the outstanding balance over disbursed/repaying.
func (u *Usecase) Stats(ctx context.Context) (*StatsDTO, error) {
	ls, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s := &StatsDTO{Total: len(ls), TotalPrincipal: decimalZero, OutstandingBalance: decimalZero}
	for i := range ls {
		l := &ls[i]
		s.TotalPrincipal = s.TotalPrincipal.Add(l.PrincipalAmount)
		switch l.Status {
		case domain.StatusPendingApproval:
			s.Pending++
		case domain.StatusApproved:
			s.Approved++
		case domain.StatusDisbursed:
			s.Disbursed++
			s.OutstandingBalance = s.OutstandingBalance.Add(l.RemainingBalance)
		case domain.StatusRepaying:
			s.Repaying++
			s.OutstandingBalance = s.OutstandingBalance.Add(l.RemainingBalance)
		case domain.StatusCompleted:
			s.Completed++
		}
	}
	return s, nil
}

// AssessEligibility runs the advisory savings-multiple check for a pending
// loan. It never changes loan state.
func (u *Usecase) AssessEligibility(ctx context.Context, loanID string) (*eligibility.Assessment, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	balance, err := u.savings.BalanceOf(ctx, l.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, savings.ErrAccountNotFound) {
			balance = decimalZero
		} else {
			return nil, err
		}
	}
	a, err := u.assessor.Assess(l.PrincipalAmount, balance)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func toDTOs(ls []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out
}
