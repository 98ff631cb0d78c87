package event

import (
	"strconv"
	"time"

	"github.com/agrofin/financing-service/pkg/events"
	"github.com/agrofin/financing-service/pkg/money"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateTypeDeal = "Deal"

func dealAggregate(eventType string, dealID int64, now time.Time) events.BaseEvent {
	return events.NewBaseEvent(eventType, strconv.FormatInt(dealID, 10), aggregateTypeDeal, now)
}

// ---------------------------------------------------------------------------
// Deal lifecycle events
// ---------------------------------------------------------------------------

// DealOriginated is raised when a financing or lease deal enters the registry.
type DealOriginated struct {
	events.BaseEvent
	FarmID         int64        `json:"farm_id"`
	Kind           string       `json:"kind"`
	ItemName       string       `json:"item_name"`
	BaseCost       money.Amount `json:"base_cost"`
	AmountFinanced money.Amount `json:"amount_financed"`
	MonthlyPayment money.Amount `json:"monthly_payment"`
	TermMonths     int          `json:"term_months"`
}

func NewDealOriginated(dealID, farmID int64, kind, itemName string, baseCost, amountFinanced, monthlyPayment money.Amount, termMonths int, now time.Time) DealOriginated {
	return DealOriginated{
		BaseEvent:      dealAggregate("DealOriginated", dealID, now),
		FarmID:         farmID,
		Kind:           kind,
		ItemName:       itemName,
		BaseCost:       baseCost,
		AmountFinanced: amountFinanced,
		MonthlyPayment: monthlyPayment,
		TermMonths:     termMonths,
	}
}

// PaymentApplied is raised for every successful payment application.
type PaymentApplied struct {
	events.BaseEvent
	FarmID            int64        `json:"farm_id"`
	ToPrincipal       money.Amount `json:"to_principal"`
	ToInterest        money.Amount `json:"to_interest"`
	PrepaymentPenalty money.Amount `json:"prepayment_penalty"`
	NewBalance        money.Amount `json:"new_balance"`
	MonthsPaid        int          `json:"months_paid"`
}

func NewPaymentApplied(dealID, farmID int64, toPrincipal, toInterest, penalty, newBalance money.Amount, monthsPaid int, now time.Time) PaymentApplied {
	return PaymentApplied{
		BaseEvent:         dealAggregate("PaymentApplied", dealID, now),
		FarmID:            farmID,
		ToPrincipal:       toPrincipal,
		ToInterest:        toInterest,
		PrepaymentPenalty: penalty,
		NewBalance:        newBalance,
		MonthsPaid:        monthsPaid,
	}
}

// DealCompleted is raised when a finance deal's balance reaches zero.
type DealCompleted struct {
	events.BaseEvent
	FarmID            int64        `json:"farm_id"`
	TotalInterestPaid money.Amount `json:"total_interest_paid"`
}

func NewDealCompleted(dealID, farmID int64, totalInterestPaid money.Amount, now time.Time) DealCompleted {
	return DealCompleted{
		BaseEvent:         dealAggregate("DealCompleted", dealID, now),
		FarmID:            farmID,
		TotalInterestPaid: totalInterestPaid,
	}
}

// DealDefaulted is raised when the external missed-payment policy moves a
// deal into default.
type DealDefaulted struct {
	events.BaseEvent
	FarmID         int64        `json:"farm_id"`
	Balance        money.Amount `json:"balance"`
	MissedPayments int          `json:"missed_payments"`
}

func NewDealDefaulted(dealID, farmID int64, balance money.Amount, missedPayments int, now time.Time) DealDefaulted {
	return DealDefaulted{
		BaseEvent:      dealAggregate("DealDefaulted", dealID, now),
		FarmID:         farmID,
		Balance:        balance,
		MissedPayments: missedPayments,
	}
}

// MissedPaymentRecorded is raised when the authority records a missed
// period for a deal.
type MissedPaymentRecorded struct {
	events.BaseEvent
	FarmID         int64 `json:"farm_id"`
	MissedPayments int   `json:"missed_payments"`
}

func NewMissedPaymentRecorded(dealID, farmID int64, missedPayments int, now time.Time) MissedPaymentRecorded {
	return MissedPaymentRecorded{
		BaseEvent:      dealAggregate("MissedPaymentRecorded", dealID, now),
		FarmID:         farmID,
		MissedPayments: missedPayments,
	}
}

// ---------------------------------------------------------------------------
// Lease events
// ---------------------------------------------------------------------------

// LeaseTermReached is raised when a lease has made its final scheduled
// payment and awaits a term action.
type LeaseTermReached struct {
	events.BaseEvent
	FarmID           int64        `json:"farm_id"`
	RemainingBalance money.Amount `json:"remaining_balance"`
}

func NewLeaseTermReached(dealID, farmID int64, remainingBalance money.Amount, now time.Time) LeaseTermReached {
	return LeaseTermReached{
		BaseEvent:        dealAggregate("LeaseTermReached", dealID, now),
		FarmID:           farmID,
		RemainingBalance: remainingBalance,
	}
}

// LeaseReturned is raised when the lessee returns the asset at term end.
type LeaseReturned struct {
	events.BaseEvent
	FarmID        int64        `json:"farm_id"`
	DepositRefund money.Amount `json:"deposit_refund"`
	DamagePenalty money.Amount `json:"damage_penalty"`
}

func NewLeaseReturned(dealID, farmID int64, depositRefund, damagePenalty money.Amount, now time.Time) LeaseReturned {
	return LeaseReturned{
		BaseEvent:     dealAggregate("LeaseReturned", dealID, now),
		FarmID:        farmID,
		DepositRefund: depositRefund,
		DamagePenalty: damagePenalty,
	}
}

// LeaseBoughtOut is raised when the lessee takes ownership at term end.
type LeaseBoughtOut struct {
	events.BaseEvent
	FarmID        int64        `json:"farm_id"`
	BuyoutPrice   money.Amount `json:"buyout_price"`
	EquityApplied money.Amount `json:"equity_applied"`
	DepositRefund money.Amount `json:"deposit_refund"`
}

func NewLeaseBoughtOut(dealID, farmID int64, buyoutPrice, equityApplied, depositRefund money.Amount, now time.Time) LeaseBoughtOut {
	return LeaseBoughtOut{
		BaseEvent:     dealAggregate("LeaseBoughtOut", dealID, now),
		FarmID:        farmID,
		BuyoutPrice:   buyoutPrice,
		EquityApplied: equityApplied,
		DepositRefund: depositRefund,
	}
}

// LeaseRenewed is raised when a lease rolls into a successor cycle with
// the old buyout price as the new residual.
type LeaseRenewed struct {
	events.BaseEvent
	FarmID           int64        `json:"farm_id"`
	SuccessorID      int64        `json:"successor_id"`
	NewResidualValue money.Amount `json:"new_residual_value"`
	TermMonths       int          `json:"term_months"`
}

func NewLeaseRenewed(dealID, farmID, successorID int64, newResidualValue money.Amount, termMonths int, now time.Time) LeaseRenewed {
	return LeaseRenewed{
		BaseEvent:        dealAggregate("LeaseRenewed", dealID, now),
		FarmID:           farmID,
		SuccessorID:      successorID,
		NewResidualValue: newResidualValue,
		TermMonths:       termMonths,
	}
}
