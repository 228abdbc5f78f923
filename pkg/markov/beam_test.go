package markov_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/markov"
)

func TestTopPaths_Example(t *testing.T) {
	ctx := context.Background()
	model, err := markov.Fit(ctx, fiveStepJourney())
	require.NoError(t, err)

	paths, err := model.TopPaths(ctx, "A", 2, 2)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	// A->B is certain; B->A and B->B both carry 0.5. Tie broken by index
	// sequence, so A,B,A ranks before A,B,B. No path may start with the
	// unobserved A->A edge.
	assert.Equal(t, []string{"A", "B", "A"}, paths[0].Segments)
	assert.InDelta(t, 0.5, paths[0].Probability, 1e-9)
	assert.Equal(t, []string{"A", "B", "B"}, paths[1].Segments)
	assert.InDelta(t, 0.5, paths[1].Probability, 1e-9)
}

func TestTopPaths_ZeroSteps(t *testing.T) {
	ctx := context.Background()
	model, err := markov.Fit(ctx, fiveStepJourney())
	require.NoError(t, err)

	paths, err := model.TopPaths(ctx, "B", 0, 5)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"B"}, paths[0].Segments)
	assert.InDelta(t, 1.0, paths[0].Probability, 1e-9)
}

func TestTopPaths_Guarantees(t *testing.T) {
	ctx := context.Background()
	model, err := markov.Fit(ctx, []domain.Observation{
		obs("c1", 0, "A"), obs("c1", 1, "B"), obs("c1", 2, "C"), obs("c1", 3, "A"),
		obs("c2", 0, "B"), obs("c2", 1, "B"), obs("c2", 2, "A"), obs("c2", 3, "C"),
		obs("c3", 0, "C"), obs("c3", 1, "B"), obs("c3", 2, "C"), obs("c3", 3, "B"),
	})
	require.NoError(t, err)

	const steps, topK = 3, 4
	paths, err := model.TopPaths(ctx, "B", steps, topK)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(paths), topK)

	matrix := model.Matrix()
	index := make(map[string]int)
	for i, s := range model.Segments() {
		index[s] = i
	}

	prev := 1.1
	for _, p := range paths {
		require.Len(t, p.Segments, steps+1)

		// Probabilities must be sorted descending.
		assert.LessOrEqual(t, p.Probability, prev)
		prev = p.Probability

		// And must equal the product of the edges they traverse.
		product := 1.0
		for i := 0; i+1 < len(p.Segments); i++ {
			product *= matrix[index[p.Segments[i]]][index[p.Segments[i+1]]]
		}
		assert.InDelta(t, product, p.Probability, 1e-9)
	}
}

func TestTopPaths_Deterministic(t *testing.T) {
	ctx := context.Background()
	model, err := markov.Fit(ctx, []domain.Observation{
		obs("c1", 0, "A"), obs("c1", 1, "B"),
		obs("c2", 0, "A"), obs("c2", 1, "C"),
		obs("c3", 0, "B"), obs("c3", 1, "A"),
		obs("c4", 0, "C"), obs("c4", 1, "A"),
	})
	require.NoError(t, err)

	first, err := model.TopPaths(ctx, "A", 4, 3)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := model.TopPaths(ctx, "A", 4, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTopPaths_ArgumentValidation(t *testing.T) {
	ctx := context.Background()
	model, err := markov.Fit(ctx, fiveStepJourney())
	require.NoError(t, err)

	_, err = model.TopPaths(ctx, "A", 2, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = model.TopPaths(ctx, "A", 2, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = model.TopPaths(ctx, "A", -1, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = model.TopPaths(ctx, "Z", 2, 2)
	assert.ErrorIs(t, err, domain.ErrUnknownSegment)
}

func TestTopPaths_EmitsSearchEvent(t *testing.T) {
	var got *domain.SearchEvent
	hooks := domain.LifecycleHooks{
		OnSearch: func(_ context.Context, e *domain.SearchEvent) { got = e },
	}

	ctx := context.Background()
	model, err := markov.Fit(ctx, fiveStepJourney(), markov.WithHooks(hooks))
	require.NoError(t, err)

	_, err = model.TopPaths(ctx, "A", 2, 2)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "A", got.Segment)
	assert.Equal(t, 2, got.Steps)
	assert.Equal(t, 2, got.TopK)
	assert.Equal(t, 2, got.Results)
}
