package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/application/registry"
	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/port"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/money"
)

// OriginateDealUseCase registers a new finance or lease deal on behalf
// of the purchase flow.
type OriginateDealUseCase struct {
	registry  *registry.DealRegistry
	publisher port.EventPublisher
}

// NewOriginateDealUseCase wires dependencies.
func NewOriginateDealUseCase(reg *registry.DealRegistry, publisher port.EventPublisher) *OriginateDealUseCase {
	return &OriginateDealUseCase{registry: reg, publisher: publisher}
}

// Execute validates the request, creates the deal with a fresh registry
// id and publishes its origination event.
func (uc *OriginateDealUseCase) Execute(ctx context.Context, req dto.OriginateDealRequest) (dto.DealResponse, error) {
	kind, err := valueobject.NewDealKind(req.Kind)
	if err != nil {
		return dto.DealResponse{}, err
	}
	asset, err := valueobject.NewAssetClass(req.AssetClass)
	if err != nil {
		return dto.DealResponse{}, err
	}

	now := time.Now().UTC()
	baseCost := money.FromDecimal(req.BaseCost)
	downPayment := money.FromDecimal(req.DownPayment)
	fees := money.FromDecimal(req.Fees)

	deal, err := uc.registry.Create(ctx, func(id int64) (model.Deal, error) {
		if kind.Equal(valueobject.DealKindLease) {
			return model.NewLeaseDeal(
				id, req.FarmID, req.ItemID, req.ItemName, asset,
				baseCost, downPayment, fees,
				money.FromDecimal(req.ResidualValue), money.FromDecimal(req.SecurityDeposit),
				req.StartDamage, req.StartWear,
				req.InterestRate, req.TermMonths, req.StartDay, now,
			)
		}

		policy, err := valueobject.ReconstructPenaltyPolicy(req.PenaltyKind, req.PenaltyPercent, req.PenaltyWindow)
		if err != nil {
			return model.Deal{}, err
		}
		return model.NewFinanceDeal(
			id, req.FarmID, req.ItemID, req.ItemName, asset,
			baseCost, downPayment, fees,
			req.InterestRate, req.TermMonths, req.StartDay, policy, now,
		)
	})
	if err != nil {
		return dto.DealResponse{}, fmt.Errorf("originate deal: %w", err)
	}

	if err := uc.publisher.Publish(ctx, deal.DomainEvents()...); err != nil {
		return dto.DealResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDealResponse(deal), nil
}
