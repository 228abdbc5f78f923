package hva_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meander/pkg/adapters/memory"
	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/hva"
)

var day0 = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

func seededTracker(t *testing.T) (*hva.Tracker, context.Context) {
	t.Helper()
	ctx := context.Background()
	tracker := hva.NewTracker(memory.NewHVARepo())

	for _, def := range []domain.HVADefinition{
		{ID: "signup", Name: "Account signup"},
		{ID: "upgrade", Name: "Plan upgrade"},
		{ID: "referral", Name: "Friend referral"},
	} {
		require.NoError(t, tracker.Define(ctx, def))
	}

	// c1: signup, upgrade, upgrade. c2: signup.
	require.NoError(t, tracker.Record(ctx, "c1", "signup", day0, nil))
	require.NoError(t, tracker.Record(ctx, "c1", "upgrade", day0.Add(24*time.Hour), nil))
	require.NoError(t, tracker.Record(ctx, "c1", "upgrade", day0.Add(72*time.Hour), nil))
	require.NoError(t, tracker.Record(ctx, "c2", "signup", day0.Add(time.Hour), nil))
	return tracker, ctx
}

func TestTracker_Define(t *testing.T) {
	ctx := context.Background()
	tracker := hva.NewTracker(memory.NewHVARepo())

	err := tracker.Define(ctx, domain.HVADefinition{Name: "missing id"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	require.NoError(t, tracker.Define(ctx, domain.HVADefinition{ID: "signup", Name: "Account signup"}))
	defs, err := tracker.Definitions(ctx)
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestTracker_RecordRequiresDefinition(t *testing.T) {
	ctx := context.Background()
	tracker := hva.NewTracker(memory.NewHVARepo())

	err := tracker.Record(ctx, "c1", "undefined", day0, nil)
	assert.ErrorIs(t, err, domain.ErrHVANotDefined)
}

func TestTracker_CustomerHistorySortedByTime(t *testing.T) {
	tracker, ctx := seededTracker(t)

	history, err := tracker.CustomerHistory(ctx, "c1")
	require.NoError(t, err)

	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
	}
}

func TestTracker_CustomerCounts(t *testing.T) {
	tracker, ctx := seededTracker(t)

	counts, err := tracker.CustomerCounts(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"signup": 1, "upgrade": 2}, counts)

	empty, err := tracker.CustomerCounts(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTracker_Summary(t *testing.T) {
	tracker, ctx := seededTracker(t)

	summary, err := tracker.Summary(ctx, "signup")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalOccurrences)
	assert.Equal(t, 2, summary.UniqueCustomers)
	assert.Equal(t, day0, summary.FirstOccurrence)
	assert.Equal(t, day0.Add(time.Hour), summary.LastOccurrence)

	_, err = tracker.Summary(ctx, "undefined")
	assert.ErrorIs(t, err, domain.ErrHVANotDefined)
}

func TestTracker_Top(t *testing.T) {
	tracker, ctx := seededTracker(t)

	// signup and upgrade tie at two occurrences; ties rank by ID.
	top, err := tracker.Top(ctx, 2)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "signup", top[0].HVAID)
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, "Account signup", top[0].Name)
	assert.Equal(t, "upgrade", top[1].HVAID)
	assert.Equal(t, 2, top[1].Count)

	// A third upgrade breaks the tie on count.
	require.NoError(t, tracker.Record(ctx, "c2", "upgrade", day0.Add(100*time.Hour), nil))
	top, err = tracker.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "upgrade", top[0].HVAID)
	assert.Equal(t, 3, top[0].Count)

	_, err = tracker.Top(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTracker_TimelineZeroFillsDays(t *testing.T) {
	tracker, ctx := seededTracker(t)

	buckets, err := tracker.Timeline(ctx, "upgrade", day0, day0.Add(96*time.Hour))
	require.NoError(t, err)

	// 2025-07-01 .. 2025-07-05 inclusive.
	require.Len(t, buckets, 5)
	counts := make([]int, len(buckets))
	for i, b := range buckets {
		counts[i] = b.Count
	}
	assert.Equal(t, []int{0, 1, 0, 1, 0}, counts)

	_, err = tracker.Timeline(ctx, "upgrade", day0.Add(time.Hour), day0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
