// Package observability exposes model lifecycle events as Prometheus
// metrics. Metrics implements domain.LifecycleHooks, so wiring it into an
// engine is a single option:
//
//	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
//	eng := meander.New(meander.WithLifecycleHooks(metrics.Hooks()))
//
// Hooks run synchronously on the calling goroutine; the collectors only
// increment counters and observe durations, which keeps them cheap enough
// for the prediction hot path.
package observability
