package loancalc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sacco-backend/internal/domain/loan"
)

var hundred = decimal.NewFromInt(100)

// Schedule is the repayment shape fixed at application time.
// TotalAmount is exact (principal + interest, never rounded);
// MonthlyPayment is rounded to 2 decimal places for presentation.
type Schedule struct {
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

// ComputeSchedule applies flat simple interest:
// total_interest = principal * rate * term / 100.
// Pure; identical inputs always produce identical output.
func ComputeSchedule(principal, ratePercentPerMonth decimal.Decimal, termMonths int) (Schedule, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return Schedule{}, fmt.Errorf("%w: principal must be positive", loan.ErrInvalidInput)
	}
	if termMonths < 1 {
		return Schedule{}, fmt.Errorf("%w: term must be at least 1 month", loan.ErrInvalidInput)
	}
	if ratePercentPerMonth.IsNegative() {
		return Schedule{}, fmt.Errorf("%w: rate must not be negative", loan.ErrInvalidInput)
	}

	term := decimal.NewFromInt(int64(termMonths))
	interest := principal.Mul(ratePercentPerMonth).Mul(term).Div(hundred)
	total := principal.Add(interest)

	return Schedule{
		TotalInterest:  interest,
		TotalAmount:    total,
		MonthlyPayment: total.Div(term).Round(2),
	}, nil
}

// ComputeForType resolves the rate from the policy table and enforces the
// type's term range plus the global principal bounds before computing.
func ComputeForType(table loan.PolicyTable, loanType loan.Type, principal decimal.Decimal, termMonths int) (Schedule, decimal.Decimal, error) {
	policy, ok := table[loanType]
	if !ok {
		return Schedule{}, decimal.Zero, fmt.Errorf("%w: unknown loan type %q", loan.ErrInvalidInput, loanType)
	}
	if termMonths < policy.MinMonths || termMonths > policy.MaxMonths {
		return Schedule{}, decimal.Zero, fmt.Errorf("%w: term %d months outside %d-%d for %s",
			loan.ErrPolicyViolation, termMonths, policy.MinMonths, policy.MaxMonths, loanType)
	}
	if principal.LessThan(loan.MinPrincipal) || principal.GreaterThan(loan.MaxPrincipal) {
		return Schedule{}, decimal.Zero, fmt.Errorf("%w: principal %s outside %s-%s",
			loan.ErrPolicyViolation, principal, loan.MinPrincipal, loan.MaxPrincipal)
	}

	sched, err := ComputeSchedule(principal, policy.RatePercentPerMonth, termMonths)
	if err != nil {
		return Schedule{}, decimal.Zero, err
	}
	return sched, policy.RatePercentPerMonth, nil
}
