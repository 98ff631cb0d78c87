package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/money"
)

var testTime = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newFinanceDeal(t *testing.T, policy valueobject.PenaltyPolicy) model.Deal {
	t.Helper()
	deal, err := model.NewFinanceDeal(
		1, 10, 100, "Used Tractor", valueobject.AssetClassVehicle,
		money.FromMajorUnits(20000), money.FromMajorUnits(2000), 0,
		decimal.RequireFromString("6.0"), 60, 5, policy, testTime,
	)
	require.NoError(t, err)
	return deal
}

func newLeaseDeal(t *testing.T, termMonths int) model.Deal {
	t.Helper()
	deal, err := model.NewLeaseDeal(
		2, 10, 200, "Leased Harvester", valueobject.AssetClassVehicle,
		money.FromMajorUnits(20000), 0, 0,
		money.FromMajorUnits(15000), money.FromMajorUnits(3000),
		0.02, 0.05,
		decimal.RequireFromString("6.0"), termMonths, 5, testTime,
	)
	require.NoError(t, err)
	return deal
}

// termCompleteLease pays a lease through its whole term.
func termCompleteLease(t *testing.T, termMonths int) model.Deal {
	t.Helper()
	deal := newLeaseDeal(t, termMonths)
	for i := 0; i < termMonths; i++ {
		next, outcome, err := deal.ApplyPayment(deal.MonthlyPayment(), testTime)
		require.NoError(t, err)
		deal = next
		if i == termMonths-1 {
			assert.True(t, outcome.TermComplete)
		}
	}
	require.True(t, deal.LeaseStatus().Equal(valueobject.LeaseStatusTermComplete))
	return deal
}

func TestNewFinanceDeal(t *testing.T) {
	deal := newFinanceDeal(t, valueobject.NoPenalty())

	assert.Equal(t, int64(1), deal.ID())
	assert.True(t, deal.Kind().Equal(valueobject.DealKindFinance))
	assert.Equal(t, money.FromMajorUnits(18000), deal.AmountFinanced())
	assert.Equal(t, money.FromMajorUnits(18000), deal.CurrentBalance())
	assert.Equal(t, 60, deal.TermMonths())
	assert.Equal(t, 0, deal.MonthsPaid())
	assert.True(t, deal.Status().Equal(valueobject.DealStatusActive))
	assert.True(t, deal.MonthlyPayment().IsPositive())
	assert.Len(t, deal.DomainEvents(), 1, "should have DealOriginated event")
}

func TestNewFinanceDeal_Validation(t *testing.T) {
	cases := []struct {
		name        string
		baseCost    money.Amount
		downPayment money.Amount
		term        int
	}{
		{"zero base cost", 0, 0, 60},
		{"down payment above base cost", money.FromMajorUnits(100), money.FromMajorUnits(200), 60},
		{"negative down payment", money.FromMajorUnits(100), -1, 60},
		{"zero term", money.FromMajorUnits(100), 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.NewFinanceDeal(
				1, 10, 100, "Tractor", valueobject.AssetClassVehicle,
				tc.baseCost, tc.downPayment, 0,
				decimal.RequireFromString("6.0"), tc.term, 1,
				valueobject.NoPenalty(), testTime,
			)
			assert.Error(t, err)
		})
	}
}

func TestNewLeaseDeal(t *testing.T) {
	deal := newLeaseDeal(t, 36)

	assert.True(t, deal.Kind().Equal(valueobject.DealKindLease))
	// Lease payments amortize depreciation: 20000 - 15000.
	assert.Equal(t, money.FromMajorUnits(5000), deal.AmountFinanced())
	assert.Equal(t, money.FromMajorUnits(5000), deal.Depreciation())
	assert.Equal(t, money.FromMajorUnits(15000), deal.ResidualValue())
	assert.Equal(t, money.FromMajorUnits(3000), deal.SecurityDeposit())
	assert.True(t, deal.LeaseStatus().Equal(valueobject.LeaseStatusActive))
	assert.Equal(t, 0.02, deal.StartDamage())
}

func TestDeal_ApplyPayment(t *testing.T) {
	deal := newFinanceDeal(t, valueobject.NoPenalty())

	next, outcome, err := deal.ApplyPayment(money.FromMajorUnits(348), testTime)
	require.NoError(t, err)

	assert.Equal(t, "90.00", outcome.ToInterest.String())
	assert.Equal(t, "258.00", outcome.ToPrincipal.String())
	assert.Equal(t, "17742.00", outcome.NewBalance.String())
	assert.True(t, outcome.PrepaymentPenalty.IsZero())
	assert.False(t, outcome.Completed)
	assert.Equal(t, 1, next.MonthsPaid())
	assert.Equal(t, "90.00", next.TotalInterestPaid().String())

	// The original copy is untouched.
	assert.Equal(t, money.FromMajorUnits(18000), deal.CurrentBalance())
	assert.Equal(t, 0, deal.MonthsPaid())
}

func TestDeal_ApplyPayment_InterestBoundary(t *testing.T) {
	deal, err := model.NewFinanceDeal(
		3, 10, 100, "Seeder", valueobject.AssetClassVehicle,
		money.FromMajorUnits(10000), 0, 0,
		decimal.RequireFromString("6.0"), 60, 1,
		valueobject.NoPenalty(), testTime,
	)
	require.NoError(t, err)

	// Period interest on 10000 at 6% is exactly 50.
	t.Run("payment below interest is rejected", func(t *testing.T) {
		_, _, err := deal.ApplyPayment(money.FromMajorUnits(49), testTime)
		assert.ErrorIs(t, err, valueobject.ErrInvalidPaymentAmount)
	})

	t.Run("payment equal to interest is the floor", func(t *testing.T) {
		next, outcome, err := deal.ApplyPayment(money.FromMajorUnits(50), testTime)
		require.NoError(t, err)
		assert.True(t, outcome.ToPrincipal.IsZero())
		assert.Equal(t, "50.00", outcome.ToInterest.String())
		assert.Equal(t, money.FromMajorUnits(10000), next.CurrentBalance())
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		_, _, err := deal.ApplyPayment(0, testTime)
		assert.ErrorIs(t, err, valueobject.ErrInvalidPaymentAmount)
		_, _, err = deal.ApplyPayment(money.FromMajorUnits(-10), testTime)
		assert.ErrorIs(t, err, valueobject.ErrInvalidPaymentAmount)
	})
}

func TestDeal_ApplyPayment_FullPayoff(t *testing.T) {
	policy, err := valueobject.DecliningBalance(decimal.RequireFromString("0.02"), 12)
	require.NoError(t, err)
	deal := newFinanceDeal(t, policy)

	next, outcome, err := deal.ApplyPayment(money.FromMajorUnits(18000), testTime)
	require.NoError(t, err)

	assert.Equal(t, money.FromMajorUnits(18000), outcome.ToPrincipal)
	assert.True(t, outcome.ToInterest.IsZero(), "payoff accrues no further interest")
	assert.Equal(t, "360.00", outcome.PrepaymentPenalty.String(), "2 percent of the remaining balance")
	assert.True(t, outcome.Completed)
	assert.True(t, next.CurrentBalance().IsZero())
	assert.True(t, next.Status().Equal(valueobject.DealStatusCompleted))

	// Further payments on the completed deal are rejected.
	_, _, err = next.ApplyPayment(money.FromMajorUnits(100), testTime)
	assert.ErrorIs(t, err, valueobject.ErrDealAlreadyResolved)
}

func TestDeal_ApplyPayment_PenaltyOutsideWindow(t *testing.T) {
	policy, err := valueobject.DecliningBalance(decimal.RequireFromString("0.02"), 12)
	require.NoError(t, err)
	deal := newFinanceDeal(t, policy)

	// Advance past the penalty window.
	for i := 0; i < 12; i++ {
		next, _, err := deal.ApplyPayment(deal.MonthlyPayment(), testTime)
		require.NoError(t, err)
		deal = next
	}
	require.Equal(t, 12, deal.MonthsPaid())
	assert.True(t, deal.PrepaymentPenalty().IsZero())

	_, outcome, err := deal.ApplyPayment(deal.CurrentBalance(), testTime)
	require.NoError(t, err)
	assert.True(t, outcome.PrepaymentPenalty.IsZero())
	assert.True(t, outcome.Completed)
}

func TestDeal_LeaseTermCompletion(t *testing.T) {
	deal := termCompleteLease(t, 3)

	assert.Equal(t, 3, deal.MonthsPaid())
	assert.True(t, deal.Status().Equal(valueobject.DealStatusActive), "deal stays active until a term action resolves it")

	// No further payments once the term is reached.
	_, _, err := deal.ApplyPayment(deal.MonthlyPayment(), testTime)
	assert.ErrorIs(t, err, valueobject.ErrDealAlreadyResolved)
}

func TestDeal_Return(t *testing.T) {
	deal := termCompleteLease(t, 3)

	next, err := deal.Return(money.FromMajorUnits(2300), money.FromMajorUnits(500), testTime)
	require.NoError(t, err)
	assert.True(t, next.LeaseStatus().Equal(valueobject.LeaseStatusReturned))
	assert.True(t, next.Status().Equal(valueobject.DealStatusCompleted))

	// Exactly one resolution per lease.
	_, err = next.Return(money.FromMajorUnits(2300), 0, testTime)
	assert.ErrorIs(t, err, valueobject.ErrDealAlreadyResolved)
	_, err = next.Buyout(money.FromMajorUnits(11000), 0, 0, testTime)
	assert.ErrorIs(t, err, valueobject.ErrDealAlreadyResolved)
}

func TestDeal_Return_Guards(t *testing.T) {
	t.Run("active lease is not resolvable", func(t *testing.T) {
		deal := newLeaseDeal(t, 36)
		_, err := deal.Return(0, 0, testTime)
		assert.ErrorIs(t, err, valueobject.ErrDealNotResolvable)
	})

	t.Run("finance deal has no term actions", func(t *testing.T) {
		deal := newFinanceDeal(t, valueobject.NoPenalty())
		_, err := deal.Return(0, 0, testTime)
		assert.ErrorIs(t, err, valueobject.ErrDealNotResolvable)
	})
}

func TestDeal_Buyout(t *testing.T) {
	deal := termCompleteLease(t, 3)

	next, err := deal.Buyout(
		money.FromMajorUnits(11000), money.FromMajorUnits(4000), money.FromMajorUnits(3000), testTime,
	)
	require.NoError(t, err)
	assert.True(t, next.LeaseStatus().Equal(valueobject.LeaseStatusBoughtOut))
	assert.True(t, next.Status().Equal(valueobject.DealStatusCompleted))
}

func TestDeal_RenewInto(t *testing.T) {
	deal := termCompleteLease(t, 3)

	old, successor, err := deal.RenewInto(
		9, money.FromMajorUnits(11000), 24, 95, 0.08, 0.12, testTime,
	)
	require.NoError(t, err)

	assert.True(t, old.LeaseStatus().Equal(valueobject.LeaseStatusRenewed))
	assert.True(t, old.Status().Equal(valueobject.DealStatusCompleted))

	// The successor starts a fresh cycle on the same asset: its assumed
	// value is the old residual and its residual is the old buyout price.
	assert.Equal(t, int64(9), successor.ID())
	assert.Equal(t, money.FromMajorUnits(15000), successor.BaseCost())
	assert.Equal(t, money.FromMajorUnits(11000), successor.ResidualValue())
	assert.Equal(t, money.FromMajorUnits(4000), successor.AmountFinanced())
	assert.Equal(t, money.FromMajorUnits(3000), successor.SecurityDeposit(), "deposit carries over")
	assert.Equal(t, 24, successor.TermMonths())
	assert.Equal(t, 0, successor.MonthsPaid())
	assert.Equal(t, 0.08, successor.StartDamage())
	assert.True(t, successor.LeaseStatus().Equal(valueobject.LeaseStatusActive))

	t.Run("invalid successor term", func(t *testing.T) {
		deal := termCompleteLease(t, 3)
		_, _, err := deal.RenewInto(10, money.FromMajorUnits(11000), 0, 95, 0, 0, testTime)
		assert.ErrorIs(t, err, valueobject.ErrInvalidTerm)
	})
}

func TestDeal_MissedPaymentsAndDefault(t *testing.T) {
	deal := newFinanceDeal(t, valueobject.NoPenalty())

	next, err := deal.RecordMissedPayment(testTime)
	require.NoError(t, err)
	next, err = next.RecordMissedPayment(testTime)
	require.NoError(t, err)
	assert.Equal(t, 2, next.MissedPayments())
	assert.True(t, next.Status().Equal(valueobject.DealStatusActive), "missed payments never escalate on their own")

	defaulted, err := next.MarkDefaulted(testTime)
	require.NoError(t, err)
	assert.True(t, defaulted.Status().Equal(valueobject.DealStatusDefaulted))

	_, err = defaulted.MarkDefaulted(testTime)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	_, err = defaulted.RecordMissedPayment(testTime)
	assert.ErrorIs(t, err, valueobject.ErrDealAlreadyResolved)
}

func TestDeal_SnapshotRoundTrip(t *testing.T) {
	deal := newLeaseDeal(t, 36)
	next, _, err := deal.ApplyPayment(deal.MonthlyPayment(), testTime)
	require.NoError(t, err)

	restored := model.ReconstructDeal(next.Snapshot())
	assert.Equal(t, next.ID(), restored.ID())
	assert.Equal(t, next.CurrentBalance(), restored.CurrentBalance())
	assert.Equal(t, next.MonthsPaid(), restored.MonthsPaid())
	assert.True(t, restored.LeaseStatus().Equal(next.LeaseStatus()))
	assert.Equal(t, next.SecurityDeposit(), restored.SecurityDeposit())
	assert.Empty(t, restored.DomainEvents(), "events do not survive persistence")
}
