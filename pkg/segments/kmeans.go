package segments

import (
	"fmt"

	"github.com/aretw0/meander/pkg/domain"
)

// defaultMaxIterations caps Lloyd's algorithm; frequency vectors converge
// in far fewer rounds in practice.
const defaultMaxIterations = 100

// KMeans is a deterministic Lloyd's-algorithm clusterer. Centroids are
// seeded from evenly spaced input rows instead of random draws, so the
// same matrix always yields the same clustering.
type KMeans struct {
	k         int
	maxIter   int
	centroids [][]float64
}

// KMeansOption configures the clusterer.
type KMeansOption func(*KMeans)

// WithMaxIterations overrides the iteration cap.
func WithMaxIterations(n int) KMeansOption {
	return func(km *KMeans) {
		km.maxIter = n
	}
}

// NewKMeans creates a clusterer with k clusters.
func NewKMeans(k int, opts ...KMeansOption) *KMeans {
	km := &KMeans{k: k, maxIter: defaultMaxIterations}
	for _, opt := range opts {
		opt(km)
	}
	return km
}

// Fit clusters the given points. Fails with domain.ErrInvalidArgument when
// k is non-positive or exceeds the number of points.
func (km *KMeans) Fit(points [][]float64) error {
	if km.k <= 0 {
		return fmt.Errorf("k %d: %w", km.k, domain.ErrInvalidArgument)
	}
	if len(points) < km.k {
		return fmt.Errorf("%d points for k=%d: %w", len(points), km.k, domain.ErrInvalidArgument)
	}

	// Seed centroids from evenly spaced rows.
	km.centroids = make([][]float64, km.k)
	for i := 0; i < km.k; i++ {
		src := points[i*len(points)/km.k]
		centroid := make([]float64, len(src))
		copy(centroid, src)
		km.centroids[i] = centroid
	}

	assignments := make([]int, len(points))
	for iter := 0; iter < km.maxIter; iter++ {
		changed := false
		for i, p := range points {
			c := km.nearest(p)
			if c != assignments[i] {
				assignments[i] = c
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Recompute centroids; clusters that lost all points keep their
		// previous position.
		sums := make([][]float64, km.k)
		counts := make([]int, km.k)
		for i := range sums {
			sums[i] = make([]float64, len(points[0]))
		}
		for i, p := range points {
			c := assignments[i]
			counts[c]++
			for j, v := range p {
				sums[c][j] += v
			}
		}
		for c := range km.centroids {
			if counts[c] == 0 {
				continue
			}
			for j := range km.centroids[c] {
				km.centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}
	return nil
}

// Predict returns the cluster of the nearest centroid, ties broken by the
// lowest cluster index. Fit must have been called.
func (km *KMeans) Predict(point []float64) (int, error) {
	if km.centroids == nil {
		return 0, domain.ErrNotFitted
	}
	return km.nearest(point), nil
}

func (km *KMeans) nearest(point []float64) int {
	best := 0
	bestDist := sqDist(point, km.centroids[0])
	for c := 1; c < len(km.centroids); c++ {
		if d := sqDist(point, km.centroids[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
