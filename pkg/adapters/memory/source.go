package memory

import (
	"context"

	"github.com/aretw0/meander/pkg/domain"
)

// JourneySource implements ports.JourneySource over a fixed slice.
// Useful for tests and for embedding pre-materialized logs.
type JourneySource struct {
	observations []domain.Observation
}

// NewJourneySource wraps an observation slice. The slice is copied so the
// caller can keep mutating its own copy.
func NewJourneySource(observations []domain.Observation) *JourneySource {
	out := make([]domain.Observation, len(observations))
	copy(out, observations)
	return &JourneySource{observations: out}
}

// Observations returns the wrapped log.
func (s *JourneySource) Observations(ctx context.Context) ([]domain.Observation, error) {
	out := make([]domain.Observation, len(s.observations))
	copy(out, s.observations)
	return out, nil
}
