package markov

import (
	"context"
	"time"

	"github.com/aretw0/meander/pkg/domain"
)

// Model is a fitted segment transition model: a vocabulary plus a
// row-stochastic transition matrix. Both are immutable after Fit, so the
// model is safe for concurrent read-only use.
type Model struct {
	vocab  *Vocabulary
	matrix [][]float64
	hooks  domain.LifecycleHooks
}

// Option configures a Fit call.
type Option func(*Model)

// WithHooks registers lifecycle callbacks fired on fit, predict and search.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Model) {
		m.hooks = hooks
	}
}

// Fit builds a transition model from a journey observation log.
//
// Observations are grouped per customer and stable-sorted by timestamp;
// each adjacent pair within one customer's journey counts as one observed
// transition. Transitions never cross customers. Rows are normalized by
// their count sum; a row with zero outbound observations is left all zero
// (absorbing state) rather than normalized or filled uniformly.
//
// Fit accepts an empty log and returns an empty model; prediction calls on
// it fail with domain.ErrNotFitted.
func Fit(ctx context.Context, observations []domain.Observation, opts ...Option) (*Model, error) {
	m := &Model{}
	for _, opt := range opts {
		opt(m)
	}

	labels := make([]string, 0, len(observations))
	for _, obs := range observations {
		labels = append(labels, obs.Segment)
	}
	m.vocab = NewVocabulary(labels)

	n := m.vocab.Len()
	m.matrix = make([][]float64, n)
	for i := range m.matrix {
		m.matrix[i] = make([]float64, n)
	}

	for _, journey := range domain.GroupJourneys(observations) {
		for i := 0; i+1 < len(journey.Segments); i++ {
			from, _ := m.vocab.Index(journey.Segments[i])
			to, _ := m.vocab.Index(journey.Segments[i+1])
			m.matrix[from][to]++
		}
	}

	for _, row := range m.matrix {
		var sum float64
		for _, c := range row {
			sum += c
		}
		if sum == 0 {
			continue // absorbing state, keep the zero row
		}
		for j := range row {
			row[j] /= sum
		}
	}

	if m.hooks.OnFit != nil {
		m.hooks.OnFit(ctx, &domain.FitEvent{
			EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventFit},
			Observations: len(observations),
			Segments:     n,
		})
	}
	return m, nil
}

// Segments returns the fitted vocabulary in index order.
func (m *Model) Segments() []string {
	return m.vocab.Labels()
}

// Matrix returns a deep copy of the transition matrix. Row i holds the
// outbound probabilities of Segments()[i].
func (m *Model) Matrix() [][]float64 {
	out := make([][]float64, len(m.matrix))
	for i, row := range m.matrix {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// fitted reports whether the model holds a non-empty vocabulary.
func (m *Model) fitted() bool {
	return m != nil && m.vocab.Len() > 0
}

// lookup validates the fitted state and resolves a segment label.
func (m *Model) lookup(segment string) (int, error) {
	if !m.fitted() {
		return 0, domain.ErrNotFitted
	}
	idx, ok := m.vocab.Index(segment)
	if !ok {
		return 0, wrapSegment(segment, domain.ErrUnknownSegment)
	}
	return idx, nil
}
