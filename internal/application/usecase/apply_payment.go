package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/application/registry"
	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/port"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/money"
)

// ApplyPaymentUseCase applies a payment to a deal. The engine never
// debits the farm itself: the funds pre-check queries the external
// ledger, and the caller settles the returned outcome amounts.
type ApplyPaymentUseCase struct {
	registry  *registry.DealRegistry
	funds     port.FundsAuthority
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewApplyPaymentUseCase wires dependencies.
func NewApplyPaymentUseCase(
	reg *registry.DealRegistry,
	funds port.FundsAuthority,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		registry:  reg,
		funds:     funds,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute processes a payment against a deal. The whole sequence runs
// under the deal's registry lock so concurrent payments cannot
// double-count balance changes.
func (uc *ApplyPaymentUseCase) Execute(ctx context.Context, req dto.ApplyPaymentRequest) (dto.PaymentResponse, error) {
	now := time.Now().UTC()
	amount := money.FromDecimal(req.Amount)

	var outcome model.PaymentOutcome
	mutated, err := uc.registry.Mutate(ctx, req.DealID, func(deal model.Deal) (model.Deal, error) {
		// Funds sufficiency is validated against the external ledger
		// before the mutation; a full payoff must also cover the
		// prepayment penalty.
		balance, err := uc.funds.FarmBalance(ctx, deal.FarmID())
		if err != nil {
			return deal, fmt.Errorf("query farm balance: %w", err)
		}
		required := amount
		if amount >= deal.CurrentBalance() {
			required += deal.PrepaymentPenalty()
		}
		if balance < required {
			return deal, valueobject.ErrInsufficientFunds
		}

		next, out, err := deal.ApplyPayment(amount, now)
		if err != nil {
			return deal, err
		}
		outcome = out
		return next, nil
	})
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("apply payment: %w", err)
	}

	if err := uc.publisher.Publish(ctx, mutated.DomainEvents()...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// A finance deal at zero balance is done; retire the record.
	if outcome.Completed {
		if err := uc.registry.Retire(ctx, req.DealID); err != nil {
			uc.logger.Warn("failed to retire completed deal", "deal_id", req.DealID, "error", err)
		}
	}

	return dto.PaymentResponse{
		DealID:            req.DealID,
		ToPrincipal:       outcome.ToPrincipal.Decimal(),
		ToInterest:        outcome.ToInterest.Decimal(),
		PrepaymentPenalty: outcome.PrepaymentPenalty.Decimal(),
		NewBalance:        outcome.NewBalance.Decimal(),
		MonthsPaid:        mutated.MonthsPaid(),
		Completed:         outcome.Completed,
		TermComplete:      outcome.TermComplete,
		Status:            mutated.Status().String(),
	}, nil
}
