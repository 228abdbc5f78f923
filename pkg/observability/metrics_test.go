package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aretw0/meander/pkg/domain"
)

func TestMetrics_CountsLifecycleEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnFit(ctx, &domain.FitEvent{Observations: 42, Segments: 5})
	hooks.OnPredict(ctx, &domain.PredictEvent{Segment: "new"})
	hooks.OnPredict(ctx, &domain.PredictEvent{Segment: "ghost", IsError: true})
	hooks.OnSearch(ctx, &domain.SearchEvent{Duration: 5 * time.Millisecond})

	if got := testutil.ToFloat64(m.fitsTotal); got != 1 {
		t.Errorf("fits_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.fitObservations); got != 42 {
		t.Errorf("fit_observations = %v, want 42", got)
	}
	if got := testutil.ToFloat64(m.fitSegments); got != 5 {
		t.Errorf("fit_segments = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.predictionsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("predictions_total{result=ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.predictionsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("predictions_total{result=error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.searchesTotal); got != 1 {
		t.Errorf("searches_total = %v, want 1", got)
	}
}

func TestMetrics_RefitOverwritesGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnFit(ctx, &domain.FitEvent{Observations: 10, Segments: 3})
	hooks.OnFit(ctx, &domain.FitEvent{Observations: 20, Segments: 4})

	if got := testutil.ToFloat64(m.fitsTotal); got != 2 {
		t.Errorf("fits_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.fitObservations); got != 20 {
		t.Errorf("fit_observations = %v, want 20", got)
	}
}
