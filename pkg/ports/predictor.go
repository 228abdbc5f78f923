package ports

import (
	"context"

	"github.com/aretw0/meander/pkg/domain"
)

// SegmentPredictor is the read surface of a fitted transition model.
// *markov.Model satisfies it; Engine.Model returns one as a stable
// snapshot that outlives refits.
type SegmentPredictor interface {
	// Segments returns the fitted vocabulary in index order.
	Segments() []string

	// Matrix returns a copy of the row-stochastic transition matrix.
	Matrix() [][]float64

	// PredictNext returns the most likely next segment.
	PredictNext(ctx context.Context, segment string) (string, error)

	// PredictPath returns a greedy walk of steps+1 segments.
	PredictPath(ctx context.Context, start string, steps int) ([]string, error)

	// TransitionProbabilities returns the full outbound distribution.
	TransitionProbabilities(segment string) (map[string]float64, error)

	// TopPaths returns the topK most probable paths of the given length.
	TopPaths(ctx context.Context, start string, steps, topK int) ([]domain.Path, error)
}
