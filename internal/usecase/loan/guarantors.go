package loan

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domainGuarantor "sacco-backend/internal/domain/guarantor"
	domain "sacco-backend/internal/domain/loan"
)

// Guarantors lists the guarantor commitments attached to a loan.
func (u *Usecase) Guarantors(ctx context.Context, loanID string) ([]domainGuarantor.Guarantor, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u.guarantors.ListByLoanID(ctx, l.ID)
}

// RespondGuarantor records a guarantor's accept/decline. Only the pledged
// member may answer, and only while the commitment is still pending.
func (u *Usecase) RespondGuarantor(ctx context.Context, guarantorID, memberID string, accept bool) (*domainGuarantor.Guarantor, error) {
	if !reHex32.MatchString(guarantorID) || !reHex32.MatchString(memberID) {
		return nil, fmt.Errorf("%w: ids must be 32-char hex", domain.ErrInvalidInput)
	}
	g, err := u.guarantors.GetByGuarantorID(ctx, guarantorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainGuarantor.ErrNotFound
		}
		return nil, err
	}
	if g.MemberID != memberID {
		return nil, domain.ErrUnauthorized
	}
	if g.Status != domainGuarantor.StatusPending {
		return nil, domain.ErrStaleTransition
	}
	if accept {
		g.Status = domainGuarantor.StatusAccepted
	} else {
		g.Status = domainGuarantor.StatusDeclined
	}
	if err := u.guarantors.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
