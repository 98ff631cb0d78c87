package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/application/registry"
	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/port"
)

// RecordMissedPaymentUseCase records one missed period on a deal.
// Escalation to default stays with the external policy; this use case
// only counts.
type RecordMissedPaymentUseCase struct {
	registry  *registry.DealRegistry
	publisher port.EventPublisher
}

// NewRecordMissedPaymentUseCase wires dependencies.
func NewRecordMissedPaymentUseCase(reg *registry.DealRegistry, publisher port.EventPublisher) *RecordMissedPaymentUseCase {
	return &RecordMissedPaymentUseCase{registry: reg, publisher: publisher}
}

// Execute increments the deal's missed-payment counter.
func (uc *RecordMissedPaymentUseCase) Execute(ctx context.Context, req dto.RecordMissedPaymentRequest) (dto.DealResponse, error) {
	now := time.Now().UTC()

	mutated, err := uc.registry.Mutate(ctx, req.DealID, func(deal model.Deal) (model.Deal, error) {
		return deal.RecordMissedPayment(now)
	})
	if err != nil {
		return dto.DealResponse{}, fmt.Errorf("record missed payment: %w", err)
	}

	if err := uc.publisher.Publish(ctx, mutated.DomainEvents()...); err != nil {
		return dto.DealResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toDealResponse(mutated), nil
}

// MarkDefaultedUseCase moves a deal into default at the external
// policy's request.
type MarkDefaultedUseCase struct {
	registry  *registry.DealRegistry
	publisher port.EventPublisher
}

// NewMarkDefaultedUseCase wires dependencies.
func NewMarkDefaultedUseCase(reg *registry.DealRegistry, publisher port.EventPublisher) *MarkDefaultedUseCase {
	return &MarkDefaultedUseCase{registry: reg, publisher: publisher}
}

// Execute transitions the deal ACTIVE -> DEFAULTED.
func (uc *MarkDefaultedUseCase) Execute(ctx context.Context, req dto.MarkDefaultedRequest) (dto.DealResponse, error) {
	now := time.Now().UTC()

	mutated, err := uc.registry.Mutate(ctx, req.DealID, func(deal model.Deal) (model.Deal, error) {
		return deal.MarkDefaulted(now)
	})
	if err != nil {
		return dto.DealResponse{}, fmt.Errorf("mark defaulted: %w", err)
	}

	if err := uc.publisher.Publish(ctx, mutated.DomainEvents()...); err != nil {
		return dto.DealResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toDealResponse(mutated), nil
}
