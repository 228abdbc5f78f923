// Package segments derives discrete customer segments from raw action
// logs: it pivots events into per-customer action frequency vectors and
// clusters those vectors with a deterministic k-means. The resulting
// segment labels are the state space of the transition model.
package segments

import (
	"sort"

	"github.com/aretw0/meander/pkg/domain"
)

// ActionMatrix is the pivot of an event log: one row per customer, one
// column per distinct action, cells holding occurrence counts. Rows and
// columns are sorted by label so the same log always produces the same
// matrix.
type ActionMatrix struct {
	Customers []string
	Actions   []string
	Counts    [][]float64
}

// BuildActionMatrix pivots an action event log into a count matrix.
func BuildActionMatrix(events []domain.ActionEvent) *ActionMatrix {
	customerSet := make(map[string]struct{})
	actionSet := make(map[string]struct{})
	for _, e := range events {
		customerSet[e.CustomerID] = struct{}{}
		actionSet[e.Action] = struct{}{}
	}

	customers := make([]string, 0, len(customerSet))
	for c := range customerSet {
		customers = append(customers, c)
	}
	sort.Strings(customers)

	actions := make([]string, 0, len(actionSet))
	for a := range actionSet {
		actions = append(actions, a)
	}
	sort.Strings(actions)

	customerIdx := make(map[string]int, len(customers))
	for i, c := range customers {
		customerIdx[c] = i
	}
	actionIdx := make(map[string]int, len(actions))
	for i, a := range actions {
		actionIdx[a] = i
	}

	counts := make([][]float64, len(customers))
	for i := range counts {
		counts[i] = make([]float64, len(actions))
	}
	for _, e := range events {
		counts[customerIdx[e.CustomerID]][actionIdx[e.Action]]++
	}

	return &ActionMatrix{Customers: customers, Actions: actions, Counts: counts}
}
