package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/optimize"
)

func fill(t *testing.T, m *optimize.ImpactMatrix, rows []string, cols []string, impacts [][]float64) {
	t.Helper()
	for i, iv := range rows {
		for j, seg := range cols {
			require.NoError(t, m.SetImpact(iv, seg, impacts[i][j]))
		}
	}
}

func TestImpactMatrix_Validation(t *testing.T) {
	_, err := optimize.NewImpactMatrix(nil, []string{"s1"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = optimize.NewImpactMatrix([]string{"a", "a"}, []string{"s1"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	m, err := optimize.NewImpactMatrix([]string{"a"}, []string{"s1"})
	require.NoError(t, err)

	err = m.SetImpact("ghost", "s1", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = m.Impact("a", "ghost")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAssign_PicksOptimumOverGreedy(t *testing.T) {
	// Greedy would grab (email, gold)=9 first and end with 9+1=10;
	// the optimum pairs email/silver and push/gold for 8+7=15.
	ivs := []string{"email", "push"}
	segs := []string{"gold", "silver"}
	m, err := optimize.NewImpactMatrix(ivs, segs)
	require.NoError(t, err)
	fill(t, m, ivs, segs, [][]float64{
		{9, 8},
		{7, 1},
	})

	allocations, total, err := m.Assign()
	require.NoError(t, err)

	assert.InDelta(t, 15.0, total, 1e-9)
	require.Len(t, allocations, 2)
	assert.Equal(t, optimize.Allocation{Intervention: "email", Segment: "silver", Impact: 8}, allocations[0])
	assert.Equal(t, optimize.Allocation{Intervention: "push", Segment: "gold", Impact: 7}, allocations[1])
}

func TestAssign_ThreeByThree(t *testing.T) {
	ivs := []string{"a", "b", "c"}
	segs := []string{"s1", "s2", "s3"}
	m, err := optimize.NewImpactMatrix(ivs, segs)
	require.NoError(t, err)
	fill(t, m, ivs, segs, [][]float64{
		{1, 2, 3},
		{3, 3, 1},
		{2, 1, 2},
	})

	// Optimum: a->s3 (3), b->s2 (3), c->s1 (2) = 8.
	_, total, err := m.Assign()
	require.NoError(t, err)
	assert.InDelta(t, 8.0, total, 1e-9)
}

func TestAssign_MoreSegmentsThanInterventions(t *testing.T) {
	ivs := []string{"email"}
	segs := []string{"gold", "silver", "bronze"}
	m, err := optimize.NewImpactMatrix(ivs, segs)
	require.NoError(t, err)
	fill(t, m, ivs, segs, [][]float64{{2, 5, 3}})

	allocations, total, err := m.Assign()
	require.NoError(t, err)

	require.Len(t, allocations, 1)
	assert.Equal(t, "silver", allocations[0].Segment)
	assert.InDelta(t, 5.0, total, 1e-9)
}

func TestAssign_MoreInterventionsThanSegments(t *testing.T) {
	ivs := []string{"email", "push", "discount"}
	segs := []string{"gold"}
	m, err := optimize.NewImpactMatrix(ivs, segs)
	require.NoError(t, err)
	fill(t, m, ivs, segs, [][]float64{{2}, {5}, {3}})

	allocations, total, err := m.Assign()
	require.NoError(t, err)

	require.Len(t, allocations, 1)
	assert.Equal(t, "push", allocations[0].Intervention)
	assert.InDelta(t, 5.0, total, 1e-9)
}
