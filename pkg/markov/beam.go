package markov

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/meander/pkg/domain"
)

// candidate is a partial path during beam search: the visited segment
// indices and the accumulated joint probability of its edges.
type candidate struct {
	states []int
	prob   float64
}

// TopPaths enumerates the topK highest joint-probability paths of exactly
// `steps` transitions starting at `start`, using a bounded-width beam
// search instead of full enumeration.
//
// At every step each retained partial path is expanded by every vocabulary
// segment (zero-probability edges included; they produce zero-probability
// candidates that fall out of the cut), all candidates are ranked, and
// only the topK survive. Cost is O(steps x topK x N) for vocabulary size
// N, against O(N^steps) for exhaustive enumeration.
//
// Guarantees: at most topK results; every path has steps+1 segments;
// probabilities are non-increasing and equal the product of the matrix
// entries along the path's edges; steps == 0 returns the start segment
// alone with probability 1.0. Ties in the cut are broken by the
// lexicographic order of the visited-index sequence, so results are
// reproducible across runs.
func (m *Model) TopPaths(ctx context.Context, start string, steps, topK int) ([]domain.Path, error) {
	began := time.Now()
	paths, err := m.topPaths(start, steps, topK)
	if m != nil && m.hooks.OnSearch != nil {
		m.hooks.OnSearch(ctx, &domain.SearchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSearch},
			Segment:   start,
			Steps:     steps,
			TopK:      topK,
			Results:   len(paths),
			Duration:  time.Since(began),
		})
	}
	return paths, err
}

func (m *Model) topPaths(start string, steps, topK int) ([]domain.Path, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("top_k %d: %w", topK, domain.ErrInvalidArgument)
	}
	if steps < 0 {
		return nil, fmt.Errorf("steps %d: %w", steps, domain.ErrInvalidArgument)
	}
	startIdx, err := m.lookup(start)
	if err != nil {
		return nil, err
	}

	beam := []candidate{{states: []int{startIdx}, prob: 1.0}}

	for step := 0; step < steps; step++ {
		expanded := make([]candidate, 0, len(beam)*m.vocab.Len())
		for _, c := range beam {
			row := m.matrix[c.states[len(c.states)-1]]
			for next, p := range row {
				states := make([]int, len(c.states)+1)
				copy(states, c.states)
				states[len(c.states)] = next
				expanded = append(expanded, candidate{states: states, prob: c.prob * p})
			}
		}

		sort.Slice(expanded, func(i, j int) bool {
			if expanded[i].prob != expanded[j].prob {
				return expanded[i].prob > expanded[j].prob
			}
			return lessStates(expanded[i].states, expanded[j].states)
		})
		if len(expanded) > topK {
			expanded = expanded[:topK]
		}
		beam = expanded
	}

	result := make([]domain.Path, len(beam))
	for i, c := range beam {
		segments := make([]string, len(c.states))
		for j, s := range c.states {
			segments[j] = m.vocab.Label(s)
		}
		result[i] = domain.Path{Segments: segments, Probability: c.prob}
	}
	return result, nil
}

// lessStates orders index sequences lexicographically. Sequences inside
// one beam generation always have equal length.
func lessStates(a, b []int) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
