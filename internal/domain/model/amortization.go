package model

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/money"
)

var monthsPerYearTimesPercent = decimal.NewFromInt(1200)

// MonthlyRate converts an annual percentage rate (e.g. 6.0 for 6%) to a
// monthly decimal rate.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(monthsPerYearTimesPercent)
}

// ComputeMonthlyPayment computes the fixed payment that amortizes
// principal over termMonths at the given annual rate:
//
//	M = P * i / (1 - (1+i)^-n), i = annualRatePercent/100/12
//
// A zero rate degenerates to an even principal split. The power term is
// computed in float64, monetary arithmetic stays in fixed point.
func ComputeMonthlyPayment(principal money.Amount, annualRatePercent decimal.Decimal, termMonths int) (money.Amount, error) {
	if termMonths <= 0 {
		return 0, valueobject.ErrInvalidTerm
	}

	if annualRatePercent.IsZero() {
		return money.FromDecimal(principal.Decimal().Div(decimal.NewFromInt(int64(termMonths)))), nil
	}

	monthlyRate := MonthlyRate(annualRatePercent)
	i := monthlyRate.InexactFloat64()
	factor := math.Pow(1+i, float64(termMonths))
	payment := principal.Decimal().InexactFloat64() * i * factor / (factor - 1)

	return money.FromDecimal(decimal.NewFromFloat(payment)), nil
}

// InterestForPeriod returns one month of interest accrued on balance.
func InterestForPeriod(balance money.Amount, annualRatePercent decimal.Decimal) money.Amount {
	return balance.MulRate(MonthlyRate(annualRatePercent))
}

// PaymentSplit is the principal/interest decomposition of one payment.
type PaymentSplit struct {
	ToPrincipal money.Amount
	ToInterest  money.Amount
}

// SplitPayment decomposes a payment against the current balance. A
// payment covering the full balance is a payoff: the whole balance goes
// to principal and no further interest accrues. Otherwise the period's
// interest is taken first and the remainder reduces principal.
//
// Callers must reject payments below the period interest before calling;
// the split never returns a negative principal portion.
func SplitPayment(payment, balance money.Amount, annualRatePercent decimal.Decimal) PaymentSplit {
	if payment >= balance {
		return PaymentSplit{ToPrincipal: balance, ToInterest: 0}
	}

	interest := InterestForPeriod(balance, annualRatePercent)
	return PaymentSplit{
		ToPrincipal: payment - interest,
		ToInterest:  interest,
	}
}

// ScheduleEntry is one projected period of an amortization schedule.
type ScheduleEntry struct {
	Period           int
	Principal        money.Amount
	Interest         money.Amount
	Total            money.Amount
	RemainingBalance money.Amount
}

// GenerateSchedule projects the full amortization of principal at the
// given rate over termMonths. The last period absorbs rounding so the
// remaining balance lands on exactly zero.
func GenerateSchedule(principal money.Amount, annualRatePercent decimal.Decimal, termMonths int) ([]ScheduleEntry, error) {
	if termMonths <= 0 {
		return nil, valueobject.ErrInvalidTerm
	}
	if !principal.IsPositive() {
		return nil, nil
	}

	payment, err := ComputeMonthlyPayment(principal, annualRatePercent, termMonths)
	if err != nil {
		return nil, err
	}

	schedule := make([]ScheduleEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := InterestForPeriod(remaining, annualRatePercent)
		principalPart := payment - interest
		total := payment

		if period == termMonths || principalPart >= remaining {
			principalPart = remaining
			total = principalPart + interest
		}

		remaining -= principalPart
		schedule = append(schedule, ScheduleEntry{
			Period:           period,
			Principal:        principalPart,
			Interest:         interest,
			Total:            total,
			RemainingBalance: remaining,
		})

		if remaining.IsZero() {
			break
		}
	}

	return schedule, nil
}
