/*
Package meander models customer journeys as segment transitions and predicts
where customers go next.

It fits a first-order Markov model over a log of segment observations:
journeys are grouped per customer, transitions between adjacent segments are
counted, and counts are normalized into a row-stochastic transition matrix.
On top of the fitted model it offers greedy single-step and multi-step
prediction plus a beam search that ranks whole paths by joint probability.

# Concept

The library follows a hexagonal layout. The model core (pkg/markov) is pure
and performs no I/O; journey logs, HVA catalogs and intervention results
reach it through the ports interfaces, with in-memory, file and Redis
adapters provided. The Engine in this package is the high-level facade: it
holds the current model behind an atomic pointer so a refit never blocks
concurrent predictions.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"
		"time"

		"github.com/aretw0/meander"
		"github.com/aretw0/meander/pkg/domain"
	)

	func main() {
		ctx := context.Background()
		eng := meander.New()

		day := func(d int) time.Time {
			return time.Date(2025, 7, 1+d, 0, 0, 0, 0, time.UTC)
		}
		err := eng.Fit(ctx, []domain.Observation{
			{CustomerID: "c1", Timestamp: day(0), Segment: "new"},
			{CustomerID: "c1", Timestamp: day(1), Segment: "active"},
			{CustomerID: "c1", Timestamp: day(2), Segment: "loyal"},
			{CustomerID: "c2", Timestamp: day(0), Segment: "new"},
			{CustomerID: "c2", Timestamp: day(1), Segment: "active"},
		})
		if err != nil {
			log.Fatal(err)
		}

		next, err := eng.PredictNext(ctx, "new")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("after new comes", next)

		paths, err := eng.TopPaths(ctx, "new", 2, 3)
		if err != nil {
			log.Fatal(err)
		}
		for _, p := range paths {
			fmt.Println(p.Segments, p.Probability)
		}
	}

Beyond the model, the library tracks High Value Actions (pkg/hva), manages
an intervention catalog with outcome analysis (pkg/interventions), derives
behavioral segments from raw action logs (pkg/segments) and assigns
interventions to segments for maximum expected impact (pkg/optimize).
*/
package meander
