package hva

import (
	"context"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/markov"
)

// SequenceModel predicts likely next actions from historical HVA
// sequences. It is the same transition model the segment engine uses,
// fitted over HVA IDs instead of segment labels, so it inherits the
// vocabulary, normalization and beam-search semantics of pkg/markov.
type SequenceModel struct {
	*markov.Model
}

// FitSequences fits a sequence model from HVA occurrence records. Records
// are grouped per customer and ordered by timestamp, exactly like journey
// observations.
func FitSequences(ctx context.Context, records []domain.HVARecord, opts ...markov.Option) (*SequenceModel, error) {
	observations := make([]domain.Observation, len(records))
	for i, r := range records {
		observations[i] = domain.Observation{
			CustomerID: r.CustomerID,
			Timestamp:  r.Timestamp,
			Segment:    r.HVAID,
		}
	}

	model, err := markov.Fit(ctx, observations, opts...)
	if err != nil {
		return nil, err
	}
	return &SequenceModel{Model: model}, nil
}

// NextHVA returns the most likely next action after the given one.
func (m *SequenceModel) NextHVA(ctx context.Context, hvaID string) (string, error) {
	return m.PredictNext(ctx, hvaID)
}

// LikelyPaths returns the topK most probable action sequences of the given
// length starting from an HVA.
func (m *SequenceModel) LikelyPaths(ctx context.Context, start string, steps, topK int) ([]domain.Path, error) {
	return m.TopPaths(ctx, start, steps, topK)
}
