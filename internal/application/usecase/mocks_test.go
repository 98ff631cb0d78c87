package usecase_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/application/registry"
	"github.com/agrofin/financing-service/internal/application/usecase"
	"github.com/agrofin/financing-service/internal/domain/event"
	"github.com/agrofin/financing-service/internal/domain/service"
	"github.com/agrofin/financing-service/internal/infrastructure/adapter"
	"github.com/agrofin/financing-service/internal/infrastructure/persistence/memory"
	"github.com/agrofin/financing-service/pkg/money"
)

// capturingPublisher records every published event for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []event.DomainEvent
	err    error
}

// failNext makes the next Publish call fail once with err.
func (p *capturingPublisher) failNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *capturingPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		err := p.err
		p.err = nil
		return err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

// testEnv wires the full use-case stack over in-memory infrastructure.
type testEnv struct {
	registry  *registry.DealRegistry
	funds     *adapter.StubFundsAuthority
	publisher *capturingPublisher

	originate    *usecase.OriginateDealUseCase
	applyPayment *usecase.ApplyPaymentUseCase
	resolveLease *usecase.ResolveLeaseTermUseCase
	getDeal      *usecase.GetDealUseCase
	listDeals    *usecase.ListFarmDealsUseCase
	getSchedule  *usecase.GetScheduleUseCase
	recordMissed *usecase.RecordMissedPaymentUseCase
	markDefault  *usecase.MarkDefaultedUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	reg, err := registry.NewDealRegistry(context.Background(), memory.NewDealRepo())
	require.NoError(t, err)

	funds := adapter.NewStubFundsAuthority(money.FromMajorUnits(1_000_000))
	publisher := &capturingPublisher{}
	logger := slog.Default()
	calc := service.NewLeaseTermCalculator()

	return &testEnv{
		registry:     reg,
		funds:        funds,
		publisher:    publisher,
		originate:    usecase.NewOriginateDealUseCase(reg, publisher),
		applyPayment: usecase.NewApplyPaymentUseCase(reg, funds, publisher, logger),
		resolveLease: usecase.NewResolveLeaseTermUseCase(reg, funds, publisher, calc, logger),
		getDeal:      usecase.NewGetDealUseCase(reg),
		listDeals:    usecase.NewListFarmDealsUseCase(reg),
		getSchedule:  usecase.NewGetScheduleUseCase(reg),
		recordMissed: usecase.NewRecordMissedPaymentUseCase(reg, publisher),
		markDefault:  usecase.NewMarkDefaultedUseCase(reg, publisher),
	}
}

func financeRequest() dto.OriginateDealRequest {
	return dto.OriginateDealRequest{
		FarmID:       10,
		ItemID:       100,
		ItemName:     "Used Tractor",
		Kind:         "FINANCE",
		AssetClass:   "VEHICLE",
		BaseCost:     decimal.NewFromInt(20000),
		DownPayment:  decimal.NewFromInt(2000),
		InterestRate: decimal.RequireFromString("6.0"),
		TermMonths:   60,
		StartDay:     5,
	}
}

func leaseRequest(termMonths int) dto.OriginateDealRequest {
	return dto.OriginateDealRequest{
		FarmID:          10,
		ItemID:          200,
		ItemName:        "Leased Harvester",
		Kind:            "LEASE",
		AssetClass:      "VEHICLE",
		BaseCost:        decimal.NewFromInt(20000),
		InterestRate:    decimal.RequireFromString("6.0"),
		TermMonths:      termMonths,
		StartDay:        5,
		ResidualValue:   decimal.NewFromInt(15000),
		SecurityDeposit: decimal.NewFromInt(3000),
	}
}

// originateDeal creates a deal and returns its response.
func (env *testEnv) originateDeal(t *testing.T, req dto.OriginateDealRequest) dto.DealResponse {
	t.Helper()
	resp, err := env.originate.Execute(context.Background(), req)
	require.NoError(t, err)
	return resp
}

// payThroughTerm applies the monthly payment until the lease term is
// reached.
func (env *testEnv) payThroughTerm(t *testing.T, dealID int64, termMonths int) {
	t.Helper()
	for i := 0; i < termMonths; i++ {
		deal, err := env.registry.GetDealByID(context.Background(), dealID)
		require.NoError(t, err)

		_, err = env.applyPayment.Execute(context.Background(), dto.ApplyPaymentRequest{
			DealID: dealID,
			Amount: deal.MonthlyPayment().Decimal(),
		})
		require.NoError(t, err)
	}
}
