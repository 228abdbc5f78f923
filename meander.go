package meander

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/markov"
	"github.com/aretw0/meander/pkg/ports"
)

// Engine is the high-level entry point for the meander library.
// It wraps the transition model behind an atomically swapped pointer, so
// refitting never blocks concurrent readers: predictions issued during a
// refit run against the previous model until the swap completes.
type Engine struct {
	model  atomic.Pointer[markov.Model]
	source ports.JourneySource
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	Name   string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks fired on fit, predict
// and search.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSource injects a journey log source used by Refit.
func WithSource(src ports.JourneySource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithName labels the engine in log output, useful when several models
// run in one process.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New initializes an Engine. The engine starts unfitted; prediction calls
// fail with domain.ErrNotFitted until Fit or Refit succeeds.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so the engine never logs through nil.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("model", eng.Name)
	}
	return eng
}

// Fit builds a transition model from the observation log and swaps it in
// as the current model.
func (e *Engine) Fit(ctx context.Context, observations []domain.Observation) error {
	model, err := markov.Fit(ctx, observations, markov.WithHooks(e.hooks))
	if err != nil {
		return err
	}
	e.model.Store(model)
	e.logger.Info("model fitted",
		"observations", len(observations),
		"segments", len(model.Segments()))
	return nil
}

// Refit reloads the journey log from the configured source and fits a
// fresh model. It requires the WithSource option.
func (e *Engine) Refit(ctx context.Context) error {
	if e.source == nil {
		return fmt.Errorf("refit requires a journey source: %w", domain.ErrInvalidArgument)
	}
	observations, err := e.source.Observations(ctx)
	if err != nil {
		return fmt.Errorf("load observations: %w", err)
	}
	return e.Fit(ctx, observations)
}

// Fitted reports whether a model is currently installed.
func (e *Engine) Fitted() bool {
	return e.model.Load() != nil
}

// Model returns the current model snapshot. The snapshot is immutable and
// stays valid across later refits.
func (e *Engine) Model() (ports.SegmentPredictor, error) {
	m, err := e.current()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Segments returns the fitted vocabulary in index order.
func (e *Engine) Segments() ([]string, error) {
	m, err := e.current()
	if err != nil {
		return nil, err
	}
	return m.Segments(), nil
}

// Matrix returns a copy of the row-stochastic transition matrix.
func (e *Engine) Matrix() ([][]float64, error) {
	m, err := e.current()
	if err != nil {
		return nil, err
	}
	return m.Matrix(), nil
}

// PredictNext returns the most likely next segment after the given one.
func (e *Engine) PredictNext(ctx context.Context, segment string) (string, error) {
	m, err := e.current()
	if err != nil {
		return "", err
	}
	return m.PredictNext(ctx, segment)
}

// PredictPath returns a greedy walk of steps+1 segments from start.
func (e *Engine) PredictPath(ctx context.Context, start string, steps int) ([]string, error) {
	m, err := e.current()
	if err != nil {
		return nil, err
	}
	return m.PredictPath(ctx, start, steps)
}

// TransitionProbabilities returns the full outbound distribution of a
// segment.
func (e *Engine) TransitionProbabilities(segment string) (map[string]float64, error) {
	m, err := e.current()
	if err != nil {
		return nil, err
	}
	return m.TransitionProbabilities(segment)
}

// TopPaths returns the topK most probable paths of the given length.
func (e *Engine) TopPaths(ctx context.Context, start string, steps, topK int) ([]domain.Path, error) {
	m, err := e.current()
	if err != nil {
		return nil, err
	}
	return m.TopPaths(ctx, start, steps, topK)
}

func (e *Engine) current() (*markov.Model, error) {
	m := e.model.Load()
	if m == nil {
		return nil, domain.ErrNotFitted
	}
	return m, nil
}
