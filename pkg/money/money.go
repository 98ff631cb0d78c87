package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in integer minor currency units (cents).
// All stored and accumulated monetary fields use Amount so that long
// amortization schedules cannot accumulate floating-point drift.
// Conversion to decimal happens only at calculation and presentation
// boundaries.
type Amount int64

// minorUnits is the number of minor units per major currency unit.
const minorUnits = 100

var minorUnitsDec = decimal.NewFromInt(minorUnits)

// FromDecimal converts a decimal major-unit value to an Amount,
// rounding half away from zero to the nearest cent.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Mul(minorUnitsDec).Round(0).IntPart())
}

// FromMajorUnits converts a whole number of major currency units.
func FromMajorUnits(v int64) Amount {
	return Amount(v * minorUnits)
}

// ParseAmount parses a decimal string such as "348.00" into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Decimal returns the amount in major units as a decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// MulRate multiplies the amount by a decimal rate, rounding half away
// from zero to the nearest cent.
func (a Amount) MulRate(rate decimal.Decimal) Amount {
	return FromDecimal(a.Decimal().Mul(rate))
}

// FloorToMajor rounds the amount down to a whole number of major units.
func (a Amount) FloorToMajor() Amount {
	return FromDecimal(a.Decimal().Floor())
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a == 0 }

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool { return a > 0 }

// IsNegative reports whether the amount is strictly less than zero.
func (a Amount) IsNegative() bool { return a < 0 }

// String formats the amount in major units with two decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Clamp constrains a to the inclusive range [lo, hi].
func Clamp(a, lo, hi Amount) Amount {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

// Max returns the larger of a and b.
func Max(a, b Amount) Amount {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b Amount) Amount {
	if a < b {
		return a
	}
	return b
}
