package markov

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/meander/pkg/domain"
)

func wrapSegment(segment string, err error) error {
	return fmt.Errorf("segment %q: %w", segment, err)
}

// PredictNext returns the most likely next segment after the given one:
// the column with the maximum probability in the segment's matrix row,
// ties broken by the lowest index. An absorbing segment (all-zero row)
// fails with domain.ErrNoTransitions; the model never falls back to a
// uniform guess.
func (m *Model) PredictNext(ctx context.Context, segment string) (string, error) {
	next, err := m.predictNext(segment)
	m.emitPredict(ctx, segment, 1, err)
	return next, err
}

func (m *Model) predictNext(segment string) (string, error) {
	idx, err := m.lookup(segment)
	if err != nil {
		return "", err
	}

	row := m.matrix[idx]
	best := 0
	for j := 1; j < len(row); j++ {
		if row[j] > row[best] {
			best = j
		}
	}
	if row[best] == 0 {
		return "", wrapSegment(segment, domain.ErrNoTransitions)
	}
	return m.vocab.Label(best), nil
}

// PredictPath rolls the model forward greedily for the given number of
// steps and returns the visited segments, start included (length steps+1).
//
// The walk is locally optimal, not globally optimal: it can revisit
// segments and cycle forever within the step budget. That is expected
// behavior, not a defect; use TopPaths for globally ranked paths. The walk
// stops with domain.ErrNoTransitions if it reaches an absorbing segment
// before exhausting its steps.
func (m *Model) PredictPath(ctx context.Context, start string, steps int) ([]string, error) {
	path, err := m.predictPath(start, steps)
	m.emitPredict(ctx, start, steps, err)
	return path, err
}

func (m *Model) predictPath(start string, steps int) ([]string, error) {
	if steps < 0 {
		return nil, fmt.Errorf("steps %d: %w", steps, domain.ErrInvalidArgument)
	}
	if _, err := m.lookup(start); err != nil {
		return nil, err
	}

	path := make([]string, 0, steps+1)
	path = append(path, start)
	current := start
	for i := 0; i < steps; i++ {
		next, err := m.predictNext(current)
		if err != nil {
			return nil, err
		}
		path = append(path, next)
		current = next
	}
	return path, nil
}

// TransitionProbabilities returns the outbound distribution of a segment
// as a label-to-probability map. Every vocabulary label is present,
// including zero-probability ones; an absorbing segment yields an all-zero
// map.
func (m *Model) TransitionProbabilities(segment string) (map[string]float64, error) {
	idx, err := m.lookup(segment)
	if err != nil {
		return nil, err
	}

	row := m.matrix[idx]
	probs := make(map[string]float64, len(row))
	for j, p := range row {
		probs[m.vocab.Label(j)] = p
	}
	return probs, nil
}

func (m *Model) emitPredict(ctx context.Context, segment string, steps int, err error) {
	if m == nil || m.hooks.OnPredict == nil {
		return
	}
	m.hooks.OnPredict(ctx, &domain.PredictEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPredict},
		Segment:   segment,
		Steps:     steps,
		IsError:   err != nil,
	})
}
