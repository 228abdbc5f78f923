// Package memory provides in-memory implementations of the ports
// repositories and sources. Safe for concurrent use; intended for tests,
// examples and single-process deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/meander/pkg/domain"
)

// HVARepo implements ports.HVARepository in memory.
type HVARepo struct {
	mu          sync.RWMutex
	definitions map[string]domain.HVADefinition
	records     []domain.HVARecord
}

// NewHVARepo creates an empty in-memory HVA repository.
func NewHVARepo() *HVARepo {
	return &HVARepo{
		definitions: make(map[string]domain.HVADefinition),
	}
}

// PutDefinition inserts or replaces a definition.
func (r *HVARepo) PutDefinition(ctx context.Context, def domain.HVADefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.ID] = def
	return nil
}

// GetDefinition returns a definition by ID.
func (r *HVARepo) GetDefinition(ctx context.Context, id string) (domain.HVADefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[id]
	if !ok {
		return domain.HVADefinition{}, domain.ErrHVANotDefined
	}
	return def, nil
}

// ListDefinitions returns all definitions sorted by ID.
func (r *HVARepo) ListDefinitions(ctx context.Context) ([]domain.HVADefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]domain.HVADefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

// AppendRecord stores one HVA occurrence.
func (r *HVARepo) AppendRecord(ctx context.Context, rec domain.HVARecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, copyRecord(rec))
	return nil
}

// RecordsByCustomer returns a customer's occurrences in insertion order.
func (r *HVARepo) RecordsByCustomer(ctx context.Context, customerID string) ([]domain.HVARecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.HVARecord
	for _, rec := range r.records {
		if rec.CustomerID == customerID {
			out = append(out, copyRecord(rec))
		}
	}
	return out, nil
}

// Records returns all occurrences across customers.
func (r *HVARepo) Records(ctx context.Context) ([]domain.HVARecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.HVARecord, len(r.records))
	for i, rec := range r.records {
		out[i] = copyRecord(rec)
	}
	return out, nil
}

// copyRecord isolates the metadata map so callers can't mutate stored state.
func copyRecord(rec domain.HVARecord) domain.HVARecord {
	if rec.Metadata == nil {
		return rec
	}
	meta := make(map[string]any, len(rec.Metadata))
	for k, v := range rec.Metadata {
		meta[k] = v
	}
	rec.Metadata = meta
	return rec
}
