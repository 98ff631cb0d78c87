package registry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofin/financing-service/internal/application/registry"
	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/internal/infrastructure/persistence/memory"
	"github.com/agrofin/financing-service/pkg/money"
)

func buildDeal(farmID int64) func(id int64) (model.Deal, error) {
	return func(id int64) (model.Deal, error) {
		return model.NewFinanceDeal(
			id, farmID, 100, "Used Tractor", valueobject.AssetClassVehicle,
			money.FromMajorUnits(20000), money.FromMajorUnits(2000), 0,
			decimal.RequireFromString("6.0"), 60, 1,
			valueobject.NoPenalty(), time.Now().UTC(),
		)
	}
}

func TestDealRegistry_MonotonicIDs(t *testing.T) {
	ctx := context.Background()
	reg, err := registry.NewDealRegistry(ctx, memory.NewDealRepo())
	require.NoError(t, err)

	for want := int64(1); want <= 3; want++ {
		deal, err := reg.Create(ctx, buildDeal(10))
		require.NoError(t, err)
		assert.Equal(t, want, deal.ID())
	}
}

func TestDealRegistry_SeedsPastExistingIDs(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDealRepo()

	existing, err := buildDeal(10)(7)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, existing))

	reg, err := registry.NewDealRegistry(ctx, repo)
	require.NoError(t, err)

	deal, err := reg.Create(ctx, buildDeal(10))
	require.NoError(t, err)
	assert.Equal(t, int64(8), deal.ID())
}

func TestDealRegistry_RetiredIDsAreNotReissued(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDealRepo()
	reg, err := registry.NewDealRegistry(ctx, repo)
	require.NoError(t, err)

	first, err := reg.Create(ctx, buildDeal(10))
	require.NoError(t, err)
	require.NoError(t, reg.Retire(ctx, first.ID()))

	second, err := reg.Create(ctx, buildDeal(10))
	require.NoError(t, err)
	assert.Greater(t, second.ID(), first.ID())
}

func TestDealRegistry_Mutate(t *testing.T) {
	ctx := context.Background()
	reg, err := registry.NewDealRegistry(ctx, memory.NewDealRepo())
	require.NoError(t, err)

	deal, err := reg.Create(ctx, buildDeal(10))
	require.NoError(t, err)

	mutated, err := reg.Mutate(ctx, deal.ID(), func(d model.Deal) (model.Deal, error) {
		return d.RecordMissedPayment(time.Now().UTC())
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mutated.MissedPayments())

	reloaded, err := reg.GetDealByID(ctx, deal.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.MissedPayments())

	t.Run("error leaves the stored deal untouched", func(t *testing.T) {
		_, err := reg.Mutate(ctx, deal.ID(), func(d model.Deal) (model.Deal, error) {
			return d, valueobject.ErrInvalidPaymentAmount
		})
		assert.ErrorIs(t, err, valueobject.ErrInvalidPaymentAmount)

		reloaded, err := reg.GetDealByID(ctx, deal.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.MissedPayments())
	})

	t.Run("unknown deal", func(t *testing.T) {
		_, err := reg.Mutate(ctx, 9999, func(d model.Deal) (model.Deal, error) {
			return d, nil
		})
		assert.ErrorIs(t, err, valueobject.ErrDealNotFound)
	})
}

func TestDealRegistry_MutateWithCreate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDealRepo()
	reg, err := registry.NewDealRegistry(ctx, repo)
	require.NoError(t, err)

	deal, err := reg.Create(ctx, buildDeal(10))
	require.NoError(t, err)

	mutated, created, err := reg.MutateWithCreate(ctx, deal.ID(),
		func(d model.Deal, newID int64) (model.Deal, model.Deal, error) {
			next, err := d.RecordMissedPayment(time.Now().UTC())
			if err != nil {
				return d, model.Deal{}, err
			}
			spawned, err := buildDeal(10)(newID)
			return next, spawned, err
		})
	require.NoError(t, err)
	assert.Equal(t, 1, mutated.MissedPayments())
	assert.Equal(t, int64(2), created.ID())

	// Both deals are persisted.
	reloaded, err := reg.GetDealByID(ctx, deal.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.MissedPayments())
	_, err = reg.GetDealByID(ctx, created.ID())
	require.NoError(t, err)

	t.Run("error persists nothing", func(t *testing.T) {
		_, _, err := reg.MutateWithCreate(ctx, deal.ID(),
			func(d model.Deal, newID int64) (model.Deal, model.Deal, error) {
				return d, model.Deal{}, valueobject.ErrDealNotResolvable
			})
		assert.ErrorIs(t, err, valueobject.ErrDealNotResolvable)

		reloaded, err := reg.GetDealByID(ctx, deal.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.MissedPayments())

		// The next created deal skips the id burned by the failed call.
		next, err := reg.Create(ctx, buildDeal(10))
		require.NoError(t, err)
		assert.Equal(t, int64(4), next.ID())
	})
}

func TestDealRegistry_ConcurrentMutationsSerialize(t *testing.T) {
	ctx := context.Background()
	reg, err := registry.NewDealRegistry(ctx, memory.NewDealRepo())
	require.NoError(t, err)

	deal, err := reg.Create(ctx, buildDeal(10))
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := reg.Mutate(ctx, deal.ID(), func(d model.Deal) (model.Deal, error) {
				return d.RecordMissedPayment(time.Now().UTC())
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := reg.GetDealByID(ctx, deal.ID())
	require.NoError(t, err)
	assert.Equal(t, workers, final.MissedPayments(), "no increment may be lost")
}

func TestDealRegistry_GetDealsByFarm(t *testing.T) {
	ctx := context.Background()
	reg, err := registry.NewDealRegistry(ctx, memory.NewDealRepo())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := reg.Create(ctx, buildDeal(10))
		require.NoError(t, err)
	}
	_, err = reg.Create(ctx, buildDeal(20))
	require.NoError(t, err)

	deals, err := reg.GetDealsByFarm(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, deals, 3)
}
