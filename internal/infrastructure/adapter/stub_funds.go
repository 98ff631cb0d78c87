package adapter

import (
	"context"
	"sync"

	"github.com/agrofin/financing-service/pkg/money"
)

// StubFundsAuthority is a development/test adapter holding farm balances
// in memory. It implements port.FundsAuthority.
type StubFundsAuthority struct {
	mu       sync.RWMutex
	balances map[int64]money.Amount
	fallback money.Amount
}

// NewStubFundsAuthority creates a stub whose unknown farms report the
// given fallback balance.
func NewStubFundsAuthority(fallback money.Amount) *StubFundsAuthority {
	return &StubFundsAuthority{
		balances: make(map[int64]money.Amount),
		fallback: fallback,
	}
}

// SetBalance fixes a farm's reported balance.
func (a *StubFundsAuthority) SetBalance(farmID int64, balance money.Amount) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balances[farmID] = balance
}

// FarmBalance returns the farm's balance, or the fallback when unset.
func (a *StubFundsAuthority) FarmBalance(_ context.Context, farmID int64) (money.Amount, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if b, ok := a.balances[farmID]; ok {
		return b, nil
	}
	return a.fallback, nil
}
