package domain

import (
	"sort"
	"time"
)

// Observation is a single point in a customer journey: the customer was in
// the given segment at the given time. Observations are the raw input of
// the transition model.
type Observation struct {
	CustomerID string    `json:"customer_id" yaml:"customer_id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Segment    string    `json:"segment" yaml:"segment"`
}

// Journey is the time-ordered sequence of segments one customer passed
// through. Only the order matters for transition counting; the timestamp
// values themselves carry no weight.
type Journey struct {
	CustomerID string
	Segments   []string
}

// Path is an ordered sequence of segment labels together with the joint
// probability of traversing it (the product of the edge probabilities).
type Path struct {
	Segments    []string `json:"segments"`
	Probability float64  `json:"probability"`
}

// GroupJourneys splits a flat observation log into per-customer journeys.
// Each customer's observations are sorted by timestamp with a stable sort,
// so records with equal timestamps keep their input order. Journeys are
// returned sorted by customer ID for reproducibility.
func GroupJourneys(observations []Observation) []Journey {
	byCustomer := make(map[string][]Observation)
	for _, obs := range observations {
		byCustomer[obs.CustomerID] = append(byCustomer[obs.CustomerID], obs)
	}

	ids := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	journeys := make([]Journey, 0, len(ids))
	for _, id := range ids {
		records := byCustomer[id]
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp.Before(records[j].Timestamp)
		})

		segments := make([]string, len(records))
		for i, r := range records {
			segments[i] = r.Segment
		}
		journeys = append(journeys, Journey{CustomerID: id, Segments: segments})
	}
	return journeys
}
