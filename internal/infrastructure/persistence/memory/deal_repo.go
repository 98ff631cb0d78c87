package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
)

// DealRepo is an in-memory port.DealRepository. It backs tests and
// single-process deployments that run without PostgreSQL.
type DealRepo struct {
	mu    sync.RWMutex
	deals map[int64]model.Snapshot
	maxID int64
}

// NewDealRepo creates an empty in-memory deal repository.
func NewDealRepo() *DealRepo {
	return &DealRepo{deals: make(map[int64]model.Snapshot)}
}

// Save stores the deal, overwriting any previous version.
func (r *DealRepo) Save(ctx context.Context, deal model.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := deal.Snapshot()
	r.deals[s.ID] = s
	if s.ID > r.maxID {
		r.maxID = s.ID
	}
	return nil
}

// FindByID returns the deal or valueobject.ErrDealNotFound.
func (r *DealRepo) FindByID(ctx context.Context, id int64) (model.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.deals[id]
	if !ok {
		return model.Deal{}, valueobject.ErrDealNotFound
	}
	return model.ReconstructDeal(s), nil
}

// FindByFarmID returns the farm's deals ordered by id.
func (r *DealRepo) FindByFarmID(ctx context.Context, farmID int64) ([]model.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Deal
	for _, s := range r.deals {
		if s.FarmID == farmID {
			out = append(out, model.ReconstructDeal(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// Delete removes the deal. The max id high-water mark is kept so retired
// ids are never reissued.
func (r *DealRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deals[id]; !ok {
		return valueobject.ErrDealNotFound
	}
	delete(r.deals, id)
	return nil
}

// MaxID returns the highest deal id ever saved.
func (r *DealRepo) MaxID(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxID, nil
}
