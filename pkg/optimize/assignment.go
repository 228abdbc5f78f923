// Package optimize allocates interventions to customer segments. Given an
// estimated impact for each (intervention, segment) pair it computes the
// one-to-one assignment maximizing total impact, using the Hungarian
// algorithm instead of factorial enumeration.
package optimize

import (
	"fmt"
	"math"

	"github.com/aretw0/meander/pkg/domain"
)

// ImpactMatrix holds the estimated impact of applying each intervention to
// each segment.
type ImpactMatrix struct {
	interventions []string
	segments      []string
	ivIdx         map[string]int
	segIdx        map[string]int
	impact        [][]float64
}

// Allocation is one cell of the optimal assignment.
type Allocation struct {
	Intervention string  `json:"intervention"`
	Segment      string  `json:"segment"`
	Impact       float64 `json:"impact"`
}

// NewImpactMatrix creates a zero-impact matrix over the given intervention
// and segment labels. Both lists must be non-empty and free of duplicates.
func NewImpactMatrix(interventions, segments []string) (*ImpactMatrix, error) {
	if len(interventions) == 0 || len(segments) == 0 {
		return nil, fmt.Errorf("empty axis: %w", domain.ErrInvalidArgument)
	}

	ivIdx := make(map[string]int, len(interventions))
	for i, iv := range interventions {
		if _, dup := ivIdx[iv]; dup {
			return nil, fmt.Errorf("duplicate intervention %q: %w", iv, domain.ErrInvalidArgument)
		}
		ivIdx[iv] = i
	}
	segIdx := make(map[string]int, len(segments))
	for i, s := range segments {
		if _, dup := segIdx[s]; dup {
			return nil, fmt.Errorf("duplicate segment %q: %w", s, domain.ErrInvalidArgument)
		}
		segIdx[s] = i
	}

	impact := make([][]float64, len(interventions))
	for i := range impact {
		impact[i] = make([]float64, len(segments))
	}
	return &ImpactMatrix{
		interventions: interventions,
		segments:      segments,
		ivIdx:         ivIdx,
		segIdx:        segIdx,
		impact:        impact,
	}, nil
}

// SetImpact records the estimated impact of one pair.
func (m *ImpactMatrix) SetImpact(intervention, segment string, impact float64) error {
	i, j, err := m.cell(intervention, segment)
	if err != nil {
		return err
	}
	m.impact[i][j] = impact
	return nil
}

// Impact returns the recorded impact of one pair.
func (m *ImpactMatrix) Impact(intervention, segment string) (float64, error) {
	i, j, err := m.cell(intervention, segment)
	if err != nil {
		return 0, err
	}
	return m.impact[i][j], nil
}

func (m *ImpactMatrix) cell(intervention, segment string) (int, int, error) {
	i, ok := m.ivIdx[intervention]
	if !ok {
		return 0, 0, fmt.Errorf("intervention %q: %w", intervention, domain.ErrInvalidArgument)
	}
	j, ok := m.segIdx[segment]
	if !ok {
		return 0, 0, fmt.Errorf("segment %q: %w", segment, domain.ErrInvalidArgument)
	}
	return i, j, nil
}

// Assign computes the one-to-one intervention/segment assignment with
// maximum total impact. With unequal axis sizes the surplus side stays
// unassigned. Returns the allocations in intervention-axis order and the
// total impact.
func (m *ImpactMatrix) Assign() ([]Allocation, float64, error) {
	rows, cols := len(m.interventions), len(m.segments)
	n := rows
	if cols > n {
		n = cols
	}

	// Square cost matrix; maximization becomes minimization by negation,
	// padded cells carry zero impact.
	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			if i < rows && j < cols {
				cost[i][j] = -m.impact[i][j]
			}
		}
	}

	rowOf := hungarian(cost)

	var allocations []Allocation
	var total float64
	byRow := make([]int, n)
	for i := range byRow {
		byRow[i] = -1
	}
	for j, i := range rowOf {
		if i >= 0 {
			byRow[i] = j
		}
	}
	for i := 0; i < rows; i++ {
		j := byRow[i]
		if j < 0 || j >= cols {
			continue // intervention left unassigned by padding
		}
		allocations = append(allocations, Allocation{
			Intervention: m.interventions[i],
			Segment:      m.segments[j],
			Impact:       m.impact[i][j],
		})
		total += m.impact[i][j]
	}
	return allocations, total, nil
}

// hungarian solves the square min-cost assignment problem with the
// potentials (Jonker-style) formulation in O(n^3). Returns, per column,
// the assigned row index.
func hungarian(cost [][]float64) []int {
	n := len(cost)
	inf := math.Inf(1)

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowOf := make([]int, n)
	for j := 1; j <= n; j++ {
		rowOf[j-1] = p[j] - 1
	}
	return rowOf
}
