package ports

import (
	"context"

	"github.com/aretw0/meander/pkg/domain"
)

// JourneySource supplies segment observation logs for model fitting.
// The whole log is materialized before fitting; the model core performs
// no I/O.
type JourneySource interface {
	// Observations returns the full journey log. Order is not significant;
	// the estimator sorts per customer by timestamp.
	Observations(ctx context.Context) ([]domain.Observation, error)
}

// HVASource supplies HVA occurrence logs.
type HVASource interface {
	HVARecords(ctx context.Context) ([]domain.HVARecord, error)
}

// ResultSource supplies intervention outcome logs.
type ResultSource interface {
	InterventionResults(ctx context.Context) ([]domain.InterventionResult, error)
}
