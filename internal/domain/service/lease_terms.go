package service

import (
	"github.com/shopspring/decimal"

	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/money"
)

// ---------------------------------------------------------------------------
// LeaseTermCalculator – domain service for lease-end accounting
// ---------------------------------------------------------------------------

// Condition tolerances and the penalty rate on the excess. Wear is the
// slow cosmetic decline, damage the mechanical one; both are fractions
// in [0, 1] measured against the state recorded at lease start.
const (
	allowedDamage     = 0.10
	allowedWear       = 0.15
	damagePenaltyRate = "0.30"
)

// DefaultMissedPaymentFee is deducted from the security deposit per
// missed payment unless the calculator is configured otherwise.
var DefaultMissedPaymentFee = money.FromMajorUnits(200)

// AssetCondition is the asset's current mechanical state, supplied by
// the caller that holds the vehicle reference.
type AssetCondition struct {
	Damage float64
	Wear   float64
}

// Deduction is one line of the security-deposit breakdown, kept for
// display by the caller.
type Deduction struct {
	Label  string
	Amount money.Amount
}

// LeaseTermCalculator computes the amounts a lease resolution settles:
// accrued equity, damage penalty, deposit refund and buyout price. All
// methods are pure and safe for concurrent use.
type LeaseTermCalculator struct {
	missedPaymentFee money.Amount
	penaltyRate      decimal.Decimal
}

// NewLeaseTermCalculator returns a calculator with the default
// missed-payment fee.
func NewLeaseTermCalculator() *LeaseTermCalculator {
	return &LeaseTermCalculator{
		missedPaymentFee: DefaultMissedPaymentFee,
		penaltyRate:      decimal.RequireFromString(damagePenaltyRate),
	}
}

// WithMissedPaymentFee overrides the per-missed-payment deposit deduction.
func (c *LeaseTermCalculator) WithMissedPaymentFee(fee money.Amount) *LeaseTermCalculator {
	c.missedPaymentFee = fee
	return c
}

// Equity returns the pro-rata share of the asset's depreciation the
// lessee has paid down through term progress, clamped to
// [0, depreciation].
func (c *LeaseTermCalculator) Equity(depreciation money.Amount, monthsPaid, termMonths int) money.Amount {
	if termMonths <= 0 || !depreciation.IsPositive() {
		return 0
	}
	progress := decimal.NewFromInt(int64(monthsPaid)).Div(decimal.NewFromInt(int64(termMonths)))
	return money.Clamp(depreciation.MulRate(progress), 0, depreciation)
}

// DamagePenalty charges 30% of base cost on condition decline beyond the
// allowed tolerances, floored to whole currency units. A nil condition
// means the asset reference was unavailable: the penalty is zero and
// ErrVehicleReferenceMissing is returned so the caller can log it.
func (c *LeaseTermCalculator) DamagePenalty(deal model.Deal, cond *AssetCondition) (money.Amount, error) {
	if deal.Asset().Equal(valueobject.AssetClassLand) {
		return 0, nil
	}
	if cond == nil {
		return 0, valueobject.ErrVehicleReferenceMissing
	}

	excessDamage := cond.Damage - deal.StartDamage() - allowedDamage
	if excessDamage < 0 {
		excessDamage = 0
	}
	excessWear := cond.Wear - deal.StartWear() - allowedWear
	if excessWear < 0 {
		excessWear = 0
	}
	if excessDamage == 0 && excessWear == 0 {
		return 0, nil
	}

	excess := decimal.NewFromFloat(excessDamage + excessWear)
	penalty := deal.BaseCost().MulRate(excess.Mul(c.penaltyRate))
	return penalty.FloorToMajor(), nil
}

// DepositRefund computes the security-deposit refund, clamped to
// [0, deposit], with an itemised breakdown of the deductions. Land
// leases take no damage deduction: mechanical condition is a vehicle
// concept.
func (c *LeaseTermCalculator) DepositRefund(deposit, damagePenalty money.Amount, missedPayments int, isLandLease bool) (money.Amount, []Deduction) {
	var deductions []Deduction

	if !isLandLease && damagePenalty.IsPositive() {
		deductions = append(deductions, Deduction{Label: "damage penalty", Amount: damagePenalty})
	}
	if missedPayments > 0 {
		deductions = append(deductions, Deduction{
			Label:  "missed payments",
			Amount: c.missedPaymentFee * money.Amount(missedPayments),
		})
	}

	refund := deposit
	for _, ded := range deductions {
		refund -= ded.Amount
	}
	return money.Clamp(refund, 0, deposit), deductions
}

// Buyout returns the price to take ownership at term end: the residual
// baseline less accumulated equity, never negative.
func (c *LeaseTermCalculator) Buyout(residualValue, equityAccumulated money.Amount) money.Amount {
	return money.Max(residualValue-equityAccumulated, 0)
}
