package usecase

import (
	"context"
	"fmt"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/application/registry"
	"github.com/agrofin/financing-service/internal/domain/model"
)

// GetDealUseCase retrieves a deal by ID.
type GetDealUseCase struct {
	registry *registry.DealRegistry
}

// NewGetDealUseCase wires dependencies.
func NewGetDealUseCase(reg *registry.DealRegistry) *GetDealUseCase {
	return &GetDealUseCase{registry: reg}
}

// Execute returns a deal response for the given ID.
func (uc *GetDealUseCase) Execute(ctx context.Context, req dto.GetDealRequest) (dto.DealResponse, error) {
	deal, err := uc.registry.GetDealByID(ctx, req.DealID)
	if err != nil {
		return dto.DealResponse{}, fmt.Errorf("find deal: %w", err)
	}
	return toDealResponse(deal), nil
}

// ListFarmDealsUseCase lists every deal owned by a farm.
type ListFarmDealsUseCase struct {
	registry *registry.DealRegistry
}

// NewListFarmDealsUseCase wires dependencies.
func NewListFarmDealsUseCase(reg *registry.DealRegistry) *ListFarmDealsUseCase {
	return &ListFarmDealsUseCase{registry: reg}
}

// Execute returns the farm's deals.
func (uc *ListFarmDealsUseCase) Execute(ctx context.Context, req dto.ListFarmDealsRequest) ([]dto.DealResponse, error) {
	deals, err := uc.registry.GetDealsByFarm(ctx, req.FarmID)
	if err != nil {
		return nil, fmt.Errorf("list farm deals: %w", err)
	}

	out := make([]dto.DealResponse, 0, len(deals))
	for _, d := range deals {
		out = append(out, toDealResponse(d))
	}
	return out, nil
}

// GetScheduleUseCase projects a deal's full amortization schedule from
// its origination terms.
type GetScheduleUseCase struct {
	registry *registry.DealRegistry
}

// NewGetScheduleUseCase wires dependencies.
func NewGetScheduleUseCase(reg *registry.DealRegistry) *GetScheduleUseCase {
	return &GetScheduleUseCase{registry: reg}
}

// Execute returns the projected schedule for the given deal.
func (uc *GetScheduleUseCase) Execute(ctx context.Context, req dto.GetDealRequest) (dto.ScheduleResponse, error) {
	deal, err := uc.registry.GetDealByID(ctx, req.DealID)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("find deal: %w", err)
	}

	entries, err := model.GenerateSchedule(deal.AmountFinanced(), deal.InterestRate(), deal.TermMonths())
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("generate schedule: %w", err)
	}
	return toScheduleResponse(deal.ID(), entries), nil
}
