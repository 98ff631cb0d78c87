package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/application/usecase"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
)

// FinancingHandler exposes financing operations over gRPC. It translates
// domain sentinel errors into gRPC status codes; everything else stays
// in the use cases.
type FinancingHandler struct {
	UnimplementedFinancingServiceServer

	originate    *usecase.OriginateDealUseCase
	applyPayment *usecase.ApplyPaymentUseCase
	resolveLease *usecase.ResolveLeaseTermUseCase
	getDeal      *usecase.GetDealUseCase
	listDeals    *usecase.ListFarmDealsUseCase
	getSchedule  *usecase.GetScheduleUseCase
	recordMissed *usecase.RecordMissedPaymentUseCase
	markDefault  *usecase.MarkDefaultedUseCase
	inspection   *usecase.GetInspectionOptionsUseCase
}

// NewFinancingHandler creates a new handler with all use-case dependencies.
func NewFinancingHandler(
	originate *usecase.OriginateDealUseCase,
	applyPayment *usecase.ApplyPaymentUseCase,
	resolveLease *usecase.ResolveLeaseTermUseCase,
	getDeal *usecase.GetDealUseCase,
	listDeals *usecase.ListFarmDealsUseCase,
	getSchedule *usecase.GetScheduleUseCase,
	recordMissed *usecase.RecordMissedPaymentUseCase,
	markDefault *usecase.MarkDefaultedUseCase,
	inspection *usecase.GetInspectionOptionsUseCase,
) *FinancingHandler {
	return &FinancingHandler{
		originate:    originate,
		applyPayment: applyPayment,
		resolveLease: resolveLease,
		getDeal:      getDeal,
		listDeals:    listDeals,
		getSchedule:  getSchedule,
		recordMissed: recordMissed,
		markDefault:  markDefault,
		inspection:   inspection,
	}
}

// OriginateDeal opens a new finance or lease deal.
func (h *FinancingHandler) OriginateDeal(ctx context.Context, req *OriginateDealRequest) (*DealResponse, error) {
	resp, err := h.originate.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

// ApplyPayment applies one payment to a deal.
func (h *FinancingHandler) ApplyPayment(ctx context.Context, req *ApplyPaymentRequest) (*PaymentResponse, error) {
	resp, err := h.applyPayment.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

// ResolveLeaseTerm applies a term action to a TERM_COMPLETE lease.
func (h *FinancingHandler) ResolveLeaseTerm(ctx context.Context, req *ResolveLeaseTermRequest) (*LeaseResolutionResponse, error) {
	resp, err := h.resolveLease.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

// GetDeal retrieves a deal by ID.
func (h *FinancingHandler) GetDeal(ctx context.Context, req *GetDealRequest) (*DealResponse, error) {
	resp, err := h.getDeal.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

// ListFarmDeals lists all deals owned by a farm.
func (h *FinancingHandler) ListFarmDeals(ctx context.Context, req *ListFarmDealsRequest) (*ListFarmDealsResponse, error) {
	deals, err := h.listDeals.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &ListFarmDealsResponse{Deals: deals}, nil
}

// GetSchedule returns the projected amortization schedule for a deal.
func (h *FinancingHandler) GetSchedule(ctx context.Context, req *GetScheduleRequest) (*ScheduleResponse, error) {
	resp, err := h.getSchedule.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

// RecordMissedPayment marks one missed period on a deal.
func (h *FinancingHandler) RecordMissedPayment(ctx context.Context, req *RecordMissedPaymentRequest) (*DealResponse, error) {
	resp, err := h.recordMissed.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

// MarkDefaulted moves a deal into default.
func (h *FinancingHandler) MarkDefaulted(ctx context.Context, req *MarkDefaultedRequest) (*DealResponse, error) {
	resp, err := h.markDefault.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

// GetInspectionOptions returns the inspection tiers for a price point.
func (h *FinancingHandler) GetInspectionOptions(ctx context.Context, req *InspectionOptionsRequest) (*InspectionOptionsResponse, error) {
	tiers, err := h.inspection.Execute(ctx, dto.InspectionOptionsRequest{Price: req.Price})
	if err != nil {
		return nil, mapError(err)
	}
	return &InspectionOptionsResponse{Tiers: tiers}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, valueobject.ErrDealNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidTerm),
		errors.Is(err, valueobject.ErrInvalidPaymentAmount):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrInsufficientFunds),
		errors.Is(err, valueobject.ErrDealAlreadyResolved),
		errors.Is(err, valueobject.ErrDealNotResolvable),
		errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
