package loan

import "github.com/shopspring/decimal"

// TypePolicy fixes the flat monthly interest rate and the allowed term range
// for one loan type.
type TypePolicy struct {
	RatePercentPerMonth decimal.Decimal
	MinMonths           int
	MaxMonths           int
}

// PolicyTable maps loan types to their policies. Kept as data rather than
// code so tests and config can substitute their own table.
type PolicyTable map[Type]TypePolicy

// Global principal bounds, independent of loan type.
var (
	MinPrincipal = decimal.NewFromInt(1_000)
	MaxPrincipal = decimal.NewFromInt(500_000)
)

// DefaultPolicyTable mirrors the cooperative's standing loan policy.
func DefaultPolicyTable() PolicyTable {
	return PolicyTable{
		TypeShortTerm: {RatePercentPerMonth: decimal.NewFromFloat(1.5), MinMonths: 1, MaxMonths: 12},
		TypeLongTerm:  {RatePercentPerMonth: decimal.NewFromFloat(1.0), MinMonths: 12, MaxMonths: 48},
		TypeHoliday:   {RatePercentPerMonth: decimal.NewFromFloat(2.0), MinMonths: 1, MaxMonths: 6},
	}
}
