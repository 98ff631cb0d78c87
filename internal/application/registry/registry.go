package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/port"
)

// DealRegistry owns deal identity and lifecycle. It is session-scoped
// and explicitly constructed; id assignment is monotonic so collisions
// are prevented by construction rather than handled at call time.
//
// All mutations to one deal id are serialized through a per-id lock: at
// most one in-flight mutation per deal, so concurrent payment or
// resolution requests cannot interleave and double-count balance
// changes or double-issue refunds. Pure calculations need no such
// coordination.
type DealRegistry struct {
	repo   port.DealRepository
	nextID atomic.Int64

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewDealRegistry creates a registry over the given store, seeding id
// assignment past the store's highest existing id.
func NewDealRegistry(ctx context.Context, repo port.DealRepository) (*DealRegistry, error) {
	maxID, err := repo.MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed registry id: %w", err)
	}

	r := &DealRegistry{
		repo:  repo,
		locks: make(map[int64]*sync.Mutex),
	}
	r.nextID.Store(maxID)
	return r, nil
}

func (r *DealRegistry) lockFor(id int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// Create assigns a fresh id, builds the deal with it and persists it.
func (r *DealRegistry) Create(ctx context.Context, build func(id int64) (model.Deal, error)) (model.Deal, error) {
	id := r.nextID.Add(1)

	deal, err := build(id)
	if err != nil {
		return model.Deal{}, err
	}
	if err := r.repo.Save(ctx, deal); err != nil {
		return model.Deal{}, fmt.Errorf("save deal %d: %w", id, err)
	}
	return deal, nil
}

// Mutate loads the deal, applies fn and persists the result, all under
// the deal's lock. fn must return the mutated copy or an error; on
// error nothing is saved.
func (r *DealRegistry) Mutate(ctx context.Context, id int64, fn func(deal model.Deal) (model.Deal, error)) (model.Deal, error) {
	l := r.lockFor(id)
	l.Lock()
	defer l.Unlock()

	deal, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return model.Deal{}, err
	}

	mutated, err := fn(deal)
	if err != nil {
		return model.Deal{}, err
	}

	if err := r.repo.Save(ctx, mutated); err != nil {
		return model.Deal{}, fmt.Errorf("save deal %d: %w", id, err)
	}
	return mutated, nil
}

// MutateWithCreate is Mutate for transitions that also spawn a new deal:
// fn receives a fresh id alongside the stored deal and returns both the
// mutated original and the newly built deal. The original is saved
// first, so once it is resolved a retried request cannot spawn a
// duplicate.
func (r *DealRegistry) MutateWithCreate(ctx context.Context, id int64, fn func(deal model.Deal, newID int64) (model.Deal, model.Deal, error)) (model.Deal, model.Deal, error) {
	l := r.lockFor(id)
	l.Lock()
	defer l.Unlock()

	deal, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return model.Deal{}, model.Deal{}, err
	}

	newID := r.nextID.Add(1)
	mutated, created, err := fn(deal, newID)
	if err != nil {
		return model.Deal{}, model.Deal{}, err
	}

	if err := r.repo.Save(ctx, mutated); err != nil {
		return model.Deal{}, model.Deal{}, fmt.Errorf("save deal %d: %w", id, err)
	}
	if err := r.repo.Save(ctx, created); err != nil {
		return model.Deal{}, model.Deal{}, fmt.Errorf("save deal %d: %w", newID, err)
	}
	return mutated, created, nil
}

// GetDealByID returns the deal for the given id.
func (r *DealRegistry) GetDealByID(ctx context.Context, id int64) (model.Deal, error) {
	return r.repo.FindByID(ctx, id)
}

// GetDealsByFarm returns every deal owned by the given farm.
func (r *DealRegistry) GetDealsByFarm(ctx context.Context, farmID int64) ([]model.Deal, error) {
	return r.repo.FindByFarmID(ctx, farmID)
}

// Retire removes a resolved deal from the store and releases its lock
// entry. Retired ids are never reissued, so a lock re-created by a
// concurrent caller only guards a not-found load.
func (r *DealRegistry) Retire(ctx context.Context, id int64) error {
	l := r.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.locks, id)
	r.mu.Unlock()
	return nil
}
