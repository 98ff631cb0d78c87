package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/application/registry"
	"github.com/agrofin/financing-service/internal/domain/event"
	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/port"
	"github.com/agrofin/financing-service/internal/domain/service"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
)

// ResolveLeaseTermUseCase resolves a TERM_COMPLETE lease with one of the
// three term actions. It computes the settlement amounts; the caller
// executes repossession or ownership transfer and settles the amounts
// against the farm ledger.
type ResolveLeaseTermUseCase struct {
	registry  *registry.DealRegistry
	funds     port.FundsAuthority
	publisher port.EventPublisher
	calc      *service.LeaseTermCalculator
	logger    *slog.Logger
}

// NewResolveLeaseTermUseCase wires dependencies.
func NewResolveLeaseTermUseCase(
	reg *registry.DealRegistry,
	funds port.FundsAuthority,
	publisher port.EventPublisher,
	calc *service.LeaseTermCalculator,
	logger *slog.Logger,
) *ResolveLeaseTermUseCase {
	return &ResolveLeaseTermUseCase{
		registry:  reg,
		funds:     funds,
		publisher: publisher,
		calc:      calc,
		logger:    logger,
	}
}

// Execute applies the requested term action under the deal's registry
// lock. A second resolution attempt on the same lease fails with
// ErrDealAlreadyResolved; no refund or buyout is ever computed twice.
func (uc *ResolveLeaseTermUseCase) Execute(ctx context.Context, req dto.ResolveLeaseTermRequest) (dto.LeaseResolutionResponse, error) {
	now := time.Now().UTC()

	var cond *service.AssetCondition
	if req.Condition != nil {
		cond = &service.AssetCondition{Damage: req.Condition.Damage, Wear: req.Condition.Wear}
	}

	if req.Action == dto.LeaseActionRenew {
		return uc.renew(ctx, req, cond, now)
	}

	var resp dto.LeaseResolutionResponse
	mutated, err := uc.registry.Mutate(ctx, req.DealID, func(deal model.Deal) (model.Deal, error) {
		equity := uc.calc.Equity(deal.Depreciation(), deal.MonthsPaid(), deal.TermMonths())
		buyout := uc.calc.Buyout(deal.ResidualValue(), equity)
		isLand := deal.Asset().Equal(valueobject.AssetClassLand)

		resp = dto.LeaseResolutionResponse{
			DealID:        req.DealID,
			Action:        req.Action,
			EquityApplied: equity.Decimal(),
			BuyoutPrice:   buyout.Decimal(),
		}

		switch req.Action {
		case dto.LeaseActionReturn:
			damagePenalty, err := uc.calc.DamagePenalty(deal, cond)
			if errors.Is(err, valueobject.ErrVehicleReferenceMissing) {
				// Recovered locally: without the asset's condition the
				// penalty defaults to zero.
				uc.logger.Warn("asset condition unavailable, damage penalty defaults to zero",
					"deal_id", deal.ID())
			} else if err != nil {
				return deal, err
			}

			refund, deductions := uc.calc.DepositRefund(deal.SecurityDeposit(), damagePenalty, deal.MissedPayments(), isLand)
			next, err := deal.Return(refund, damagePenalty, now)
			if err != nil {
				return deal, err
			}

			resp.DamagePenalty = damagePenalty.Decimal()
			resp.DepositRefund = refund.Decimal()
			resp.Deductions = toDeductionLines(deductions)
			resp.LeaseStatus = next.LeaseStatus().String()
			return next, nil

		case dto.LeaseActionBuyout:
			balance, err := uc.funds.FarmBalance(ctx, deal.FarmID())
			if err != nil {
				return deal, fmt.Errorf("query farm balance: %w", err)
			}
			if balance < buyout {
				return deal, valueobject.ErrInsufficientFunds
			}

			// The lessee keeps the asset, so no damage deduction; only
			// missed payments reduce the deposit refund.
			refund, deductions := uc.calc.DepositRefund(deal.SecurityDeposit(), 0, deal.MissedPayments(), isLand)
			next, err := deal.Buyout(buyout, equity, refund, now)
			if err != nil {
				return deal, err
			}

			resp.DepositRefund = refund.Decimal()
			resp.Deductions = toDeductionLines(deductions)
			resp.LeaseStatus = next.LeaseStatus().String()
			return next, nil

		default:
			return deal, fmt.Errorf("invalid lease action: %q", req.Action)
		}
	})
	if err != nil {
		return dto.LeaseResolutionResponse{}, fmt.Errorf("resolve lease term: %w", err)
	}

	if err := uc.publisher.Publish(ctx, mutated.DomainEvents()...); err != nil {
		return dto.LeaseResolutionResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return resp, nil
}

// renew rolls the lease into a successor cycle. Predecessor and
// successor are persisted in one registry step, predecessor first, and
// events for both publish only after the saves: a failed publish cannot
// leave an orphan successor behind a still-resolvable lease.
func (uc *ResolveLeaseTermUseCase) renew(ctx context.Context, req dto.ResolveLeaseTermRequest, cond *service.AssetCondition, now time.Time) (dto.LeaseResolutionResponse, error) {
	var resp dto.LeaseResolutionResponse
	resolved, successor, err := uc.registry.MutateWithCreate(ctx, req.DealID, func(deal model.Deal, successorID int64) (model.Deal, model.Deal, error) {
		equity := uc.calc.Equity(deal.Depreciation(), deal.MonthsPaid(), deal.TermMonths())
		buyout := uc.calc.Buyout(deal.ResidualValue(), equity)

		term := req.NewTermMonths
		if term == 0 {
			term = deal.TermMonths()
		}
		damage, wear := deal.StartDamage(), deal.StartWear()
		if cond != nil {
			damage, wear = cond.Damage, cond.Wear
		}

		old, succ, err := deal.RenewInto(successorID, buyout, term, req.StartDay, damage, wear, now)
		if err != nil {
			return deal, model.Deal{}, err
		}

		resp = dto.LeaseResolutionResponse{
			DealID:        req.DealID,
			Action:        req.Action,
			EquityApplied: equity.Decimal(),
			BuyoutPrice:   buyout.Decimal(),
			SuccessorID:   successorID,
			LeaseStatus:   old.LeaseStatus().String(),
		}
		return old, succ, nil
	})
	if err != nil {
		return dto.LeaseResolutionResponse{}, fmt.Errorf("resolve lease term: %w", err)
	}

	events := make([]event.DomainEvent, 0, len(resolved.DomainEvents())+len(successor.DomainEvents()))
	events = append(events, resolved.DomainEvents()...)
	events = append(events, successor.DomainEvents()...)
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.LeaseResolutionResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return resp, nil
}
