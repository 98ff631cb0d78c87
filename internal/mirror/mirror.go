// Package mirror maintains a read-only projection of deal state from the
// financing event stream. Display clients query the mirror instead of
// the engine, so they can render balances without ever mutating a deal.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	pkgkafka "github.com/agrofin/financing-service/pkg/kafka"
	"github.com/agrofin/financing-service/pkg/money"
)

// DealView is the mirror's flattened picture of one deal. It carries
// only what a display surface needs.
type DealView struct {
	DealID         int64        `json:"deal_id"`
	FarmID         int64        `json:"farm_id"`
	Kind           string       `json:"kind"`
	ItemName       string       `json:"item_name"`
	MonthlyPayment money.Amount `json:"monthly_payment"`
	CurrentBalance money.Amount `json:"current_balance"`
	MonthsPaid     int          `json:"months_paid"`
	TermMonths     int          `json:"term_months"`
	MissedPayments int          `json:"missed_payments"`
	Resolved       bool         `json:"resolved"`
	LastEventType  string       `json:"last_event_type"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Mirror applies financing events to an in-memory view keyed by deal id.
type Mirror struct {
	mu     sync.RWMutex
	deals  map[int64]DealView
	logger *slog.Logger
}

// New creates an empty mirror.
func New(logger *slog.Logger) *Mirror {
	return &Mirror{
		deals:  make(map[int64]DealView),
		logger: logger,
	}
}

// Handle is a pkg/kafka.Handler that applies one event to the view.
// Events carry their type in the event_type header; the payload supplies
// whichever fields that event type defines.
func (m *Mirror) Handle(_ context.Context, msg pkgkafka.Message) error {
	eventType := msg.Headers["event_type"]
	dealID, err := strconv.ParseInt(string(msg.Key), 10, 64)
	if err != nil {
		return fmt.Errorf("parse deal id from message key %q: %w", msg.Key, err)
	}

	occurredAt, err := time.Parse(time.RFC3339Nano, msg.Headers["occurred_at"])
	if err != nil {
		occurredAt = time.Now().UTC()
	}

	var payload struct {
		FarmID         int64        `json:"farm_id"`
		Kind           string       `json:"kind"`
		ItemName       string       `json:"item_name"`
		AmountFinanced money.Amount `json:"amount_financed"`
		MonthlyPayment money.Amount `json:"monthly_payment"`
		TermMonths     int          `json:"term_months"`
		NewBalance     money.Amount `json:"new_balance"`
		MonthsPaid     int          `json:"months_paid"`
		MissedPayments int          `json:"missed_payments"`
	}
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return fmt.Errorf("unmarshal %s event: %w", eventType, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	view := m.deals[dealID]
	view.DealID = dealID
	if payload.FarmID != 0 {
		view.FarmID = payload.FarmID
	}
	view.LastEventType = eventType
	view.UpdatedAt = occurredAt

	switch eventType {
	case "DealOriginated":
		view.Kind = payload.Kind
		view.ItemName = payload.ItemName
		view.MonthlyPayment = payload.MonthlyPayment
		view.CurrentBalance = payload.AmountFinanced
		view.TermMonths = payload.TermMonths
		view.MonthsPaid = 0
		view.Resolved = false

	case "PaymentApplied":
		view.CurrentBalance = payload.NewBalance
		view.MonthsPaid = payload.MonthsPaid

	case "MissedPaymentRecorded":
		view.MissedPayments = payload.MissedPayments

	case "DealCompleted", "DealDefaulted", "LeaseReturned", "LeaseBoughtOut", "LeaseRenewed":
		view.Resolved = true

	case "LeaseTermReached":
		// Still unresolved; the term action follows.

	default:
		m.logger.Debug("ignoring unknown event type", "event_type", eventType, "deal_id", dealID)
	}

	m.deals[dealID] = view
	return nil
}

// Deal returns the view of one deal.
func (m *Mirror) Deal(dealID int64) (DealView, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.deals[dealID]
	return v, ok
}

// FarmDeals returns all unresolved deal views for a farm.
func (m *Mirror) FarmDeals(farmID int64) []DealView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []DealView
	for _, v := range m.deals {
		if v.FarmID == farmID && !v.Resolved {
			out = append(out, v)
		}
	}
	return out
}
