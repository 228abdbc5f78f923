package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/meander/pkg/domain"
)

// InterventionRepo implements ports.InterventionRepository in memory.
type InterventionRepo struct {
	mu      sync.RWMutex
	catalog map[string]domain.Intervention
	results []domain.InterventionResult
}

// NewInterventionRepo creates an empty in-memory intervention repository.
func NewInterventionRepo() *InterventionRepo {
	return &InterventionRepo{
		catalog: make(map[string]domain.Intervention),
	}
}

// Put inserts or replaces a catalog entry.
func (r *InterventionRepo) Put(ctx context.Context, iv domain.Intervention) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog[iv.ID] = iv
	return nil
}

// Get returns a catalog entry by ID.
func (r *InterventionRepo) Get(ctx context.Context, id string) (domain.Intervention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	iv, ok := r.catalog[id]
	if !ok {
		return domain.Intervention{}, domain.ErrInterventionNotFound
	}
	return iv, nil
}

// List returns all catalog entries sorted by ID.
func (r *InterventionRepo) List(ctx context.Context) ([]domain.Intervention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ivs := make([]domain.Intervention, 0, len(r.catalog))
	for _, iv := range r.catalog {
		ivs = append(ivs, iv)
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].ID < ivs[j].ID })
	return ivs, nil
}

// Delete removes a catalog entry.
func (r *InterventionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.catalog[id]; !ok {
		return domain.ErrInterventionNotFound
	}
	delete(r.catalog, id)
	return nil
}

// AppendResult stores one application outcome.
func (r *InterventionRepo) AppendResult(ctx context.Context, res domain.InterventionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	return nil
}

// ResultsByIntervention returns outcomes for one intervention in insertion order.
func (r *InterventionRepo) ResultsByIntervention(ctx context.Context, id string) ([]domain.InterventionResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.InterventionResult
	for _, res := range r.results {
		if res.InterventionID == id {
			out = append(out, res)
		}
	}
	return out, nil
}

// Results returns all outcomes across interventions.
func (r *InterventionRepo) Results(ctx context.Context) ([]domain.InterventionResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.InterventionResult, len(r.results))
	copy(out, r.results)
	return out, nil
}
