package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/meander/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by engine lifecycle events.
type Metrics struct {
	fitsTotal        prometheus.Counter
	fitObservations  prometheus.Gauge
	fitSegments      prometheus.Gauge
	predictionsTotal *prometheus.CounterVec
	searchesTotal    prometheus.Counter
	searchDuration   prometheus.Histogram
}

// NewMetrics registers the collectors on the given registerer. Registering
// the same registerer twice panics, as usual with Prometheus collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		fitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "meander",
			Name:      "fits_total",
			Help:      "Number of completed model fits.",
		}),
		fitObservations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "meander",
			Name:      "fit_observations",
			Help:      "Observation count of the most recent fit.",
		}),
		fitSegments: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "meander",
			Name:      "fit_segments",
			Help:      "Vocabulary size of the most recent fit.",
		}),
		predictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meander",
			Name:      "predictions_total",
			Help:      "Number of single-step and greedy predictions by result.",
		}, []string{"result"}),
		searchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "meander",
			Name:      "searches_total",
			Help:      "Number of completed beam searches.",
		}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meander",
			Name:      "search_duration_seconds",
			Help:      "Beam search wall time.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFit: func(_ context.Context, e *domain.FitEvent) {
			m.fitsTotal.Inc()
			m.fitObservations.Set(float64(e.Observations))
			m.fitSegments.Set(float64(e.Segments))
		},
		OnPredict: func(_ context.Context, e *domain.PredictEvent) {
			result := "ok"
			if e.IsError {
				result = "error"
			}
			m.predictionsTotal.WithLabelValues(result).Inc()
		},
		OnSearch: func(_ context.Context, e *domain.SearchEvent) {
			m.searchesTotal.Inc()
			m.searchDuration.Observe(e.Duration.Seconds())
		},
	}
}
