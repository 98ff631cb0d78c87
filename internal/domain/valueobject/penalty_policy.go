package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agrofin/financing-service/pkg/money"
)

// ---------------------------------------------------------------------------
// PenaltyPolicy – immutable value object
// ---------------------------------------------------------------------------

// PenaltyPolicy is the explicit capability marker for prepayment
// penalties. Deals without a policy carry the zero-value NoPenalty and
// pay nothing on early payoff; the set of policies is closed rather than
// inferred from which methods a deal happens to implement.
type PenaltyPolicy struct {
	kind         string
	percent      decimal.Decimal
	windowMonths int
}

const (
	penaltyKindNone             = "NONE"
	penaltyKindDecliningBalance = "DECLINING_BALANCE"
)

// NoPenalty is the default policy: early payoff is free.
func NoPenalty() PenaltyPolicy {
	return PenaltyPolicy{kind: penaltyKindNone}
}

// DecliningBalance charges percent (e.g. 0.02 for 2%) of the remaining
// balance when the payoff happens within the first windowMonths of the
// term. Outside the window the penalty is zero.
func DecliningBalance(percent decimal.Decimal, windowMonths int) (PenaltyPolicy, error) {
	if percent.IsNegative() {
		return PenaltyPolicy{}, fmt.Errorf("penalty percent must not be negative: %s", percent)
	}
	if windowMonths < 0 {
		return PenaltyPolicy{}, fmt.Errorf("penalty window must not be negative: %d", windowMonths)
	}
	return PenaltyPolicy{
		kind:         penaltyKindDecliningBalance,
		percent:      percent,
		windowMonths: windowMonths,
	}, nil
}

// ReconstructPenaltyPolicy rebuilds a policy from persistence.
func ReconstructPenaltyPolicy(kind string, percent decimal.Decimal, windowMonths int) (PenaltyPolicy, error) {
	switch kind {
	case penaltyKindNone, "":
		return NoPenalty(), nil
	case penaltyKindDecliningBalance:
		return DecliningBalance(percent, windowMonths)
	default:
		return PenaltyPolicy{}, fmt.Errorf("invalid penalty policy kind: %q", kind)
	}
}

// Kind returns the policy kind string.
func (p PenaltyPolicy) Kind() string {
	if p.kind == "" {
		return penaltyKindNone
	}
	return p.kind
}

// Percent returns the penalty percentage for declining-balance policies.
func (p PenaltyPolicy) Percent() decimal.Decimal { return p.percent }

// WindowMonths returns the penalty window for declining-balance policies.
func (p PenaltyPolicy) WindowMonths() int { return p.windowMonths }

// FullPayoffPenalty returns the fee charged when a payment fully
// discharges the given balance after monthsPaid periods. Evaluated only
// on full payoff; the fee is charged separately from the balance
// reduction, never netted into the principal/interest split.
func (p PenaltyPolicy) FullPayoffPenalty(balance money.Amount, monthsPaid int) money.Amount {
	if p.Kind() != penaltyKindDecliningBalance {
		return 0
	}
	if monthsPaid >= p.windowMonths {
		return 0
	}
	return balance.MulRate(p.percent)
}
