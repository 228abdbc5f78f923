// Package interventions manages the marketing intervention catalog and the
// analysis of recorded intervention outcomes. Both operate on an explicit
// ports.InterventionRepository; there is no process-wide catalog state.
package interventions

import (
	"context"
	"fmt"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/ports"
)

// Catalog provides CRUD access to intervention definitions.
type Catalog struct {
	repo ports.InterventionRepository
}

// NewCatalog creates a catalog over the given repository.
func NewCatalog(repo ports.InterventionRepository) *Catalog {
	return &Catalog{repo: repo}
}

// Add registers an intervention. The ID must be non-empty. Adding an
// existing ID replaces the entry.
func (c *Catalog) Add(ctx context.Context, iv domain.Intervention) error {
	if iv.ID == "" {
		return fmt.Errorf("intervention id is empty: %w", domain.ErrInvalidArgument)
	}
	return c.repo.Put(ctx, iv)
}

// Get returns an intervention by ID.
func (c *Catalog) Get(ctx context.Context, id string) (domain.Intervention, error) {
	return c.repo.Get(ctx, id)
}

// List returns all interventions sorted by ID.
func (c *Catalog) List(ctx context.Context) ([]domain.Intervention, error) {
	return c.repo.List(ctx)
}

// Update replaces an existing intervention. Unlike Add it fails with
// domain.ErrInterventionNotFound when the ID is unknown.
func (c *Catalog) Update(ctx context.Context, iv domain.Intervention) error {
	if _, err := c.repo.Get(ctx, iv.ID); err != nil {
		return fmt.Errorf("update %q: %w", iv.ID, err)
	}
	return c.repo.Put(ctx, iv)
}

// Remove deletes an intervention from the catalog.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}
