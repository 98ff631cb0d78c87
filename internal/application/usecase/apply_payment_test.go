package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/money"
)

func TestApplyPayment(t *testing.T) {
	env := newTestEnv(t)
	deal := env.originateDeal(t, financeRequest())

	resp, err := env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(348),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(90).Equal(resp.ToInterest), "got %s", resp.ToInterest)
	assert.True(t, decimal.NewFromInt(258).Equal(resp.ToPrincipal), "got %s", resp.ToPrincipal)
	assert.True(t, decimal.NewFromInt(17742).Equal(resp.NewBalance), "got %s", resp.NewBalance)
	assert.Equal(t, 1, resp.MonthsPaid)
	assert.False(t, resp.Completed)
	assert.Contains(t, env.publisher.eventTypes(), "PaymentApplied")
}

func TestApplyPayment_InsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	deal := env.originateDeal(t, financeRequest())
	env.funds.SetBalance(10, money.FromMajorUnits(300))

	_, err := env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(348),
	})
	assert.ErrorIs(t, err, valueobject.ErrInsufficientFunds)

	// Nothing changed on the deal.
	reloaded, err := env.getDeal.Execute(context.Background(), dto.GetDealRequest{DealID: deal.ID})
	require.NoError(t, err)
	assert.True(t, deal.CurrentBalance.Equal(reloaded.CurrentBalance))
	assert.Equal(t, 0, reloaded.MonthsPaid)
}

func TestApplyPayment_PayoffMustCoverPenalty(t *testing.T) {
	env := newTestEnv(t)

	req := financeRequest()
	req.PenaltyKind = "DECLINING_BALANCE"
	req.PenaltyPercent = decimal.RequireFromString("0.02")
	req.PenaltyWindow = 12
	deal := env.originateDeal(t, req)

	// Balance 18000, penalty 360: a farm holding exactly 18000 cannot
	// pay off inside the window.
	env.funds.SetBalance(10, money.FromMajorUnits(18000))
	_, err := env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(18000),
	})
	assert.ErrorIs(t, err, valueobject.ErrInsufficientFunds)

	env.funds.SetBalance(10, money.FromMajorUnits(18360))
	resp, err := env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(18000),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(360).Equal(resp.PrepaymentPenalty), "got %s", resp.PrepaymentPenalty)
	assert.True(t, resp.Completed)
}

func TestApplyPayment_CompletionRetiresDeal(t *testing.T) {
	env := newTestEnv(t)
	deal := env.originateDeal(t, financeRequest())

	resp, err := env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(18000),
	})
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Contains(t, env.publisher.eventTypes(), "DealCompleted")

	// The record is gone; a second payment cannot find it.
	_, err = env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, valueobject.ErrDealNotFound)
}

func TestApplyPayment_BelowInterest(t *testing.T) {
	env := newTestEnv(t)
	deal := env.originateDeal(t, financeRequest())

	// Period interest on 18000 at 6% is 90.
	_, err := env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(89),
	})
	assert.ErrorIs(t, err, valueobject.ErrInvalidPaymentAmount)
}

func TestApplyPayment_LeaseTermReached(t *testing.T) {
	env := newTestEnv(t)
	deal := env.originateDeal(t, leaseRequest(3))

	env.payThroughTerm(t, deal.ID, 3)

	reloaded, err := env.getDeal.Execute(context.Background(), dto.GetDealRequest{DealID: deal.ID})
	require.NoError(t, err)
	assert.Equal(t, "TERM_COMPLETE", reloaded.LeaseStatus)
	assert.Contains(t, env.publisher.eventTypes(), "LeaseTermReached")

	// Term-complete leases stay in the registry until resolved.
	_, err = env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, valueobject.ErrDealAlreadyResolved)
}

func TestRecordMissedPaymentAndDefault(t *testing.T) {
	env := newTestEnv(t)
	deal := env.originateDeal(t, financeRequest())

	resp, err := env.recordMissed.Execute(context.Background(), dto.RecordMissedPaymentRequest{DealID: deal.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MissedPayments)
	assert.Equal(t, "ACTIVE", resp.Status, "escalation is a separate decision")
	assert.Contains(t, env.publisher.eventTypes(), "MissedPaymentRecorded")

	defaulted, err := env.markDefault.Execute(context.Background(), dto.MarkDefaultedRequest{DealID: deal.ID})
	require.NoError(t, err)
	assert.Equal(t, "DEFAULTED", defaulted.Status)
	assert.Contains(t, env.publisher.eventTypes(), "DealDefaulted")

	_, err = env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
		DealID: deal.ID,
		Amount: decimal.NewFromInt(348),
	})
	assert.ErrorIs(t, err, valueobject.ErrDealAlreadyResolved)
}
