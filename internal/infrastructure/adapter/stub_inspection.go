package adapter

import (
	"context"
	"fmt"

	"github.com/agrofin/financing-service/internal/domain/port"
	"github.com/agrofin/financing-service/pkg/money"
)

// StubInspectionClient is a development/test adapter that derives tier
// costs from the asset price. It implements port.InspectionClient.
type StubInspectionClient struct{}

// NewStubInspectionClient creates a new stub adapter.
func NewStubInspectionClient() *StubInspectionClient {
	return &StubInspectionClient{}
}

// TierOptions returns three fixed tiers priced as a fraction of the
// asset price, floored to whole currency units. This allows repeatable
// test scenarios without the inspection subsystem running.
func (c *StubInspectionClient) TierOptions(_ context.Context, price money.Amount) ([]port.InspectionTier, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("price must be positive")
	}

	return []port.InspectionTier{
		{Name: "BASIC", Cost: (price / 100).FloorToMajor(), DurationHours: 2},
		{Name: "STANDARD", Cost: (price / 40).FloorToMajor(), DurationHours: 6},
		{Name: "THOROUGH", Cost: (price / 20).FloorToMajor(), DurationHours: 12},
	}, nil
}
