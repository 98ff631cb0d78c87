package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/service"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/money"
	"github.com/agrofin/financing-service/pkg/testutil"
)

func vehicleLease(t *testing.T, startDamage, startWear float64) model.Deal {
	t.Helper()
	deal, err := model.NewLeaseDeal(
		1, 10, 100, "Leased Harvester", valueobject.AssetClassVehicle,
		money.FromMajorUnits(20000), 0, 0,
		money.FromMajorUnits(15000), money.FromMajorUnits(3000),
		startDamage, startWear,
		decimal.RequireFromString("6.0"), 36, 1,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return deal
}

func landLease(t *testing.T) model.Deal {
	t.Helper()
	deal, err := model.NewLeaseDeal(
		2, 10, 200, "North Field", valueobject.AssetClassLand,
		money.FromMajorUnits(50000), 0, 0,
		money.FromMajorUnits(45000), money.FromMajorUnits(5000),
		0, 0,
		decimal.RequireFromString("4.0"), 60, 1,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return deal
}

func TestEquity(t *testing.T) {
	calc := service.NewLeaseTermCalculator()
	depreciation := money.FromMajorUnits(5000)

	t.Run("pro rata over term progress", func(t *testing.T) {
		assert.Equal(t, money.FromMajorUnits(2500), calc.Equity(depreciation, 18, 36))
		assert.Equal(t, money.FromMajorUnits(5000), calc.Equity(depreciation, 36, 36))
		assert.True(t, calc.Equity(depreciation, 0, 36).IsZero())
	})

	t.Run("clamped to depreciation", func(t *testing.T) {
		assert.Equal(t, money.FromMajorUnits(5000), calc.Equity(depreciation, 40, 36))
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		assert.True(t, calc.Equity(depreciation, 10, 0).IsZero())
		assert.True(t, calc.Equity(0, 10, 36).IsZero())
	})
}

func TestDamagePenalty(t *testing.T) {
	calc := service.NewLeaseTermCalculator()

	t.Run("within tolerances", func(t *testing.T) {
		deal := vehicleLease(t, 0, 0)
		penalty, err := calc.DamagePenalty(deal, &service.AssetCondition{Damage: 0.10, Wear: 0.15})
		require.NoError(t, err)
		assert.True(t, penalty.IsZero())
	})

	t.Run("excess over both tolerances", func(t *testing.T) {
		deal := vehicleLease(t, 0, 0)
		// Excess damage 0.15 + excess wear 0.05 = 0.20; 20000 * 0.20 * 0.30 = 1200.
		penalty, err := calc.DamagePenalty(deal, &service.AssetCondition{Damage: 0.25, Wear: 0.20})
		require.NoError(t, err)
		testutil.AssertAmount(t, "1200.00", penalty)
	})

	t.Run("tolerances apply to decline since lease start", func(t *testing.T) {
		deal := vehicleLease(t, 0.10, 0.10)
		penalty, err := calc.DamagePenalty(deal, &service.AssetCondition{Damage: 0.20, Wear: 0.25})
		require.NoError(t, err)
		assert.True(t, penalty.IsZero())
	})

	t.Run("penalty is floored to whole units", func(t *testing.T) {
		deal := vehicleLease(t, 0, 0)
		// 20000 * 0.111 * 0.30 = 666.00; any fractional cents floor away.
		penalty, err := calc.DamagePenalty(deal, &service.AssetCondition{Damage: 0.177, Wear: 0.184})
		require.NoError(t, err)
		assert.Equal(t, penalty, penalty.FloorToMajor())
	})

	t.Run("monotone in condition decline", func(t *testing.T) {
		deal := vehicleLease(t, 0, 0)
		low, err := calc.DamagePenalty(deal, &service.AssetCondition{Damage: 0.20, Wear: 0.20})
		require.NoError(t, err)
		high, err := calc.DamagePenalty(deal, &service.AssetCondition{Damage: 0.40, Wear: 0.30})
		require.NoError(t, err)
		assert.True(t, high >= low)
	})

	t.Run("missing vehicle reference", func(t *testing.T) {
		deal := vehicleLease(t, 0, 0)
		penalty, err := calc.DamagePenalty(deal, nil)
		assert.ErrorIs(t, err, valueobject.ErrVehicleReferenceMissing)
		assert.True(t, penalty.IsZero())
	})

	t.Run("land has no mechanical condition", func(t *testing.T) {
		penalty, err := calc.DamagePenalty(landLease(t), nil)
		require.NoError(t, err)
		assert.True(t, penalty.IsZero())
	})
}

func TestDepositRefund(t *testing.T) {
	calc := service.NewLeaseTermCalculator()
	deposit := money.FromMajorUnits(3000)

	t.Run("damage and missed payments itemised", func(t *testing.T) {
		refund, deductions := calc.DepositRefund(deposit, money.FromMajorUnits(500), 1, false)
		testutil.AssertAmount(t, "2300.00", refund)
		require.Len(t, deductions, 2)
		assert.Equal(t, "damage penalty", deductions[0].Label)
		assert.Equal(t, money.FromMajorUnits(500), deductions[0].Amount)
		assert.Equal(t, "missed payments", deductions[1].Label)
		assert.Equal(t, money.FromMajorUnits(200), deductions[1].Amount)
	})

	t.Run("full refund with no deductions", func(t *testing.T) {
		refund, deductions := calc.DepositRefund(deposit, 0, 0, false)
		assert.Equal(t, deposit, refund)
		assert.Empty(t, deductions)
	})

	t.Run("refund never goes negative", func(t *testing.T) {
		refund, _ := calc.DepositRefund(money.FromMajorUnits(100), money.FromMajorUnits(500), 3, false)
		assert.True(t, refund.IsZero())
	})

	t.Run("land lease skips the damage deduction", func(t *testing.T) {
		refund, deductions := calc.DepositRefund(deposit, money.FromMajorUnits(500), 0, true)
		assert.Equal(t, deposit, refund)
		assert.Empty(t, deductions)
	})

	t.Run("configurable missed payment fee", func(t *testing.T) {
		custom := service.NewLeaseTermCalculator().WithMissedPaymentFee(money.FromMajorUnits(50))
		refund, _ := custom.DepositRefund(deposit, 0, 2, false)
		testutil.AssertAmount(t, "2900.00", refund)
	})
}

func TestBuyout(t *testing.T) {
	calc := service.NewLeaseTermCalculator()

	assert.Equal(t, money.FromMajorUnits(11000),
		calc.Buyout(money.FromMajorUnits(15000), money.FromMajorUnits(4000)))

	t.Run("never negative", func(t *testing.T) {
		assert.True(t, calc.Buyout(money.FromMajorUnits(1000), money.FromMajorUnits(4000)).IsZero())
	})

	t.Run("no equity pays full residual", func(t *testing.T) {
		assert.Equal(t, money.FromMajorUnits(15000), calc.Buyout(money.FromMajorUnits(15000), 0))
	})
}
