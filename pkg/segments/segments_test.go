package segments_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/segments"
)

var t0 = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func ev(customer, action string, n int) []domain.ActionEvent {
	events := make([]domain.ActionEvent, n)
	for i := range events {
		events[i] = domain.ActionEvent{
			CustomerID: customer,
			Timestamp:  t0.Add(time.Duration(i) * time.Minute),
			Action:     action,
		}
	}
	return events
}

// browsersAndBuyers is a log with two obvious clusters: c1/c2 browse a
// lot and never buy, c3/c4 buy a lot and barely browse.
func browsersAndBuyers() []domain.ActionEvent {
	var events []domain.ActionEvent
	events = append(events, ev("c1", "browse", 10)...)
	events = append(events, ev("c2", "browse", 9)...)
	events = append(events, ev("c2", "purchase", 1)...)
	events = append(events, ev("c3", "purchase", 10)...)
	events = append(events, ev("c4", "purchase", 9)...)
	events = append(events, ev("c4", "browse", 1)...)
	return events
}

func TestBuildActionMatrix(t *testing.T) {
	matrix := segments.BuildActionMatrix(browsersAndBuyers())

	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, matrix.Customers)
	assert.Equal(t, []string{"browse", "purchase"}, matrix.Actions)

	// c2 browsed 9 times and purchased once.
	assert.Equal(t, []float64{9, 1}, matrix.Counts[1])
	// c3 only purchased.
	assert.Equal(t, []float64{0, 10}, matrix.Counts[2])
}

func TestMapper_SeparatesClusters(t *testing.T) {
	mapper := segments.NewMapper(2)
	require.NoError(t, mapper.Fit(browsersAndBuyers()))

	s1, err := mapper.SegmentOf("c1")
	require.NoError(t, err)
	s2, err := mapper.SegmentOf("c2")
	require.NoError(t, err)
	s3, err := mapper.SegmentOf("c3")
	require.NoError(t, err)
	s4, err := mapper.SegmentOf("c4")
	require.NoError(t, err)

	assert.Equal(t, s1, s2, "browsers must share a segment")
	assert.Equal(t, s3, s4, "buyers must share a segment")
	assert.NotEqual(t, s1, s3, "browsers and buyers must differ")
}

func TestMapper_Deterministic(t *testing.T) {
	first := segments.NewMapper(2)
	require.NoError(t, first.Fit(browsersAndBuyers()))
	want, err := first.Assignments()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again := segments.NewMapper(2)
		require.NoError(t, again.Fit(browsersAndBuyers()))
		got, err := again.Assignments()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMapper_Validation(t *testing.T) {
	err := segments.NewMapper(2).Fit(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	err = segments.NewMapper(0).Fit(browsersAndBuyers())
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// More clusters than customers.
	err = segments.NewMapper(10).Fit(browsersAndBuyers())
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = segments.NewMapper(2).Assignments()
	assert.ErrorIs(t, err, domain.ErrNotFitted)

	fitted := segments.NewMapper(2)
	require.NoError(t, fitted.Fit(browsersAndBuyers()))
	_, err = fitted.SegmentOf("ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownSegment)
}

func TestKMeans_PredictBeforeFit(t *testing.T) {
	_, err := segments.NewKMeans(2).Predict([]float64{1, 2})
	assert.ErrorIs(t, err, domain.ErrNotFitted)
}
