package port

import (
	"context"

	"github.com/agrofin/financing-service/internal/domain/event"
	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/pkg/money"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// DealRepository persists and retrieves deals. Implementations return
// valueobject.ErrDealNotFound for unknown ids.
type DealRepository interface {
	Save(ctx context.Context, deal model.Deal) error
	FindByID(ctx context.Context, id int64) (model.Deal, error)
	FindByFarmID(ctx context.Context, farmID int64) ([]model.Deal, error)
	Delete(ctx context.Context, id int64) error
	MaxID(ctx context.Context) (int64, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// FundsAuthority reads farm balances from the external ledger. The
// engine never debits or credits; callers settle the returned outcome
// amounts against the ledger themselves.
type FundsAuthority interface {
	FarmBalance(ctx context.Context, farmID int64) (money.Amount, error)
}

// InspectionTier is one purchasable inspection option for a used asset.
type InspectionTier struct {
	Name          string
	Cost          money.Amount
	DurationHours int
}

// InspectionClient exposes the inspection subsystem's tier options,
// consumed read-only here.
type InspectionClient interface {
	TierOptions(ctx context.Context, price money.Amount) ([]InspectionTier, error)
}
