package eligibility

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sacco-backend/internal/domain/loan"
)

var hundred = decimal.NewFromInt(100)

// DefaultMultiple caps a member's borrowing at three times their savings.
var DefaultMultiple = decimal.NewFromInt(3)

type Tier string

const (
	TierLow    Tier = "low"    // fully covered by the savings multiple
	TierMedium Tier = "medium" // at least half covered
	TierHigh   Tier = "high"
)

// Assessment is advisory only: committee reviewers see it, but it never
// gates a decision.
type Assessment struct {
	MaxEligiblePrincipal decimal.Decimal `json:"max_eligible_principal"`
	EligibilityPercent   decimal.Decimal `json:"eligibility_percent"`
	Tier                 Tier            `json:"tier"`
}

type Assessor struct {
	multiple decimal.Decimal
}

func NewAssessor(multiple decimal.Decimal) *Assessor {
	if multiple.LessThanOrEqual(decimal.Zero) {
		multiple = DefaultMultiple
	}
	return &Assessor{multiple: multiple}
}

// Assess computes how much of the requested principal the member's savings
// cover. The percent clamps at 100.
func (a *Assessor) Assess(requestedPrincipal, savingsBalance decimal.Decimal) (Assessment, error) {
	if requestedPrincipal.LessThanOrEqual(decimal.Zero) {
		return Assessment{}, fmt.Errorf("%w: requested principal must be positive", loan.ErrInvalidInput)
	}
	if savingsBalance.IsNegative() {
		savingsBalance = decimal.Zero
	}

	maxEligible := savingsBalance.Mul(a.multiple)
	percent := maxEligible.Div(requestedPrincipal).Mul(hundred).Round(2)
	if percent.GreaterThan(hundred) {
		percent = hundred
	}

	return Assessment{
		MaxEligiblePrincipal: maxEligible,
		EligibilityPercent:   percent,
		Tier:                 tierOf(percent),
	}, nil
}

var fifty = decimal.NewFromInt(50)

func tierOf(percent decimal.Decimal) Tier {
	switch {
	case percent.GreaterThanOrEqual(hundred):
		return TierLow
	case percent.GreaterThanOrEqual(fifty):
		return TierMedium
	default:
		return TierHigh
	}
}
