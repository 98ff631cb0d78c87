package usecase

import (
	"context"
	"fmt"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/domain/port"
	"github.com/agrofin/financing-service/pkg/money"
)

// GetInspectionOptionsUseCase surfaces the inspection subsystem's tier
// options for a used asset at a price point.
type GetInspectionOptionsUseCase struct {
	inspection port.InspectionClient
}

// NewGetInspectionOptionsUseCase wires dependencies.
func NewGetInspectionOptionsUseCase(client port.InspectionClient) *GetInspectionOptionsUseCase {
	return &GetInspectionOptionsUseCase{inspection: client}
}

// Execute returns the available inspection tiers.
func (uc *GetInspectionOptionsUseCase) Execute(ctx context.Context, req dto.InspectionOptionsRequest) ([]dto.InspectionTierResponse, error) {
	tiers, err := uc.inspection.TierOptions(ctx, money.FromDecimal(req.Price))
	if err != nil {
		return nil, fmt.Errorf("inspection tier options: %w", err)
	}

	out := make([]dto.InspectionTierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, dto.InspectionTierResponse{
			Name:          t.Name,
			Cost:          t.Cost.Decimal(),
			DurationHours: t.DurationHours,
		})
	}
	return out, nil
}
