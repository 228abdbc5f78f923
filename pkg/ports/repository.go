package ports

import (
	"context"

	"github.com/aretw0/meander/pkg/domain"
)

// HVARepository stores HVA definitions and occurrence records.
// Implementations must be safe for concurrent use.
type HVARepository interface {
	// PutDefinition inserts or replaces a definition.
	PutDefinition(ctx context.Context, def domain.HVADefinition) error

	// GetDefinition returns a definition by ID.
	// Returns domain.ErrHVANotDefined if it does not exist.
	GetDefinition(ctx context.Context, id string) (domain.HVADefinition, error)

	// ListDefinitions returns all definitions sorted by ID.
	ListDefinitions(ctx context.Context) ([]domain.HVADefinition, error)

	// AppendRecord stores one HVA occurrence.
	AppendRecord(ctx context.Context, rec domain.HVARecord) error

	// RecordsByCustomer returns a customer's occurrences in insertion order.
	RecordsByCustomer(ctx context.Context, customerID string) ([]domain.HVARecord, error)

	// Records returns all occurrences across customers.
	Records(ctx context.Context) ([]domain.HVARecord, error)
}

// InterventionRepository stores the intervention catalog and outcome
// records. Implementations must be safe for concurrent use.
type InterventionRepository interface {
	// Put inserts or replaces a catalog entry.
	Put(ctx context.Context, iv domain.Intervention) error

	// Get returns a catalog entry by ID.
	// Returns domain.ErrInterventionNotFound if it does not exist.
	Get(ctx context.Context, id string) (domain.Intervention, error)

	// List returns all catalog entries sorted by ID.
	List(ctx context.Context) ([]domain.Intervention, error)

	// Delete removes a catalog entry.
	// Returns domain.ErrInterventionNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// AppendResult stores one application outcome.
	AppendResult(ctx context.Context, res domain.InterventionResult) error

	// ResultsByIntervention returns outcomes for one intervention in
	// insertion order.
	ResultsByIntervention(ctx context.Context, id string) ([]domain.InterventionResult, error)

	// Results returns all outcomes across interventions.
	Results(ctx context.Context) ([]domain.InterventionResult, error)
}
