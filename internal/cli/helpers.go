package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/aretw0/meander/internal/adapters/journeylog"
	"github.com/aretw0/meander/internal/presentation/tui"
	"github.com/aretw0/meander/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows
// retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// FitFromFile loads a journey log (CSV or JSONL) and fits the engine.
// It returns the number of observations consumed.
func FitFromFile(ctx context.Context, deps *Deps, path string) (int, error) {
	observations, err := journeylog.NewReader(path).Observations(ctx)
	if err != nil {
		return 0, fmt.Errorf("error reading journey log: %w", err)
	}
	if err := deps.Engine.Fit(ctx, observations); err != nil {
		return 0, fmt.Errorf("error fitting model: %w", err)
	}
	return len(observations), nil
}

// IsTTY reports whether stdout is an interactive terminal. Non-interactive
// output (pipes, CI) gets raw markdown instead of styled rendering.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RenderMarkdown prints a markdown report, styled when stdout is a
// terminal and raw otherwise.
func RenderMarkdown(markdown string) {
	if IsTTY() {
		if out, err := tui.NewRenderer()(markdown); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(markdown)
}

// PrintSystemMessage prints a standardized system message to stdout.
func PrintSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

func noopHooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{}
}

// combineHooks chains two hook sets; both fire for every event.
func combineHooks(a, b domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFit: func(ctx context.Context, e *domain.FitEvent) {
			if a.OnFit != nil {
				a.OnFit(ctx, e)
			}
			if b.OnFit != nil {
				b.OnFit(ctx, e)
			}
		},
		OnPredict: func(ctx context.Context, e *domain.PredictEvent) {
			if a.OnPredict != nil {
				a.OnPredict(ctx, e)
			}
			if b.OnPredict != nil {
				b.OnPredict(ctx, e)
			}
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			if a.OnSearch != nil {
				a.OnSearch(ctx, e)
			}
			if b.OnSearch != nil {
				b.OnSearch(ctx, e)
			}
		},
	}
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFit: func(ctx context.Context, e *domain.FitEvent) {
			logger.Debug("Model Fitted", "observations", e.Observations, "segments", e.Segments)
		},
		OnPredict: func(ctx context.Context, e *domain.PredictEvent) {
			if e.IsError {
				logger.Debug("Predict (Error)", "segment", e.Segment, "steps", e.Steps)
			} else {
				logger.Debug("Predict", "segment", e.Segment, "steps", e.Steps)
			}
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			logger.Debug("Beam Search", "segment", e.Segment, "steps", e.Steps,
				"top_k", e.TopK, "results", e.Results, "duration", e.Duration)
		},
	}
}
