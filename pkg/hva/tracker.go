// Package hva tracks High Value Actions: definitions, per-customer
// occurrence records, aggregate summaries and daily timelines. Storage is
// delegated to a ports.HVARepository so catalogs are explicit dependencies
// rather than process-wide state.
package hva

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/ports"
)

// Tracker records and aggregates HVA occurrences.
type Tracker struct {
	repo ports.HVARepository
	// now is swapped in tests.
	now func() time.Time
}

// NewTracker creates a tracker over the given repository.
func NewTracker(repo ports.HVARepository) *Tracker {
	return &Tracker{repo: repo, now: time.Now}
}

// Define registers an HVA definition. The ID must be non-empty.
func (t *Tracker) Define(ctx context.Context, def domain.HVADefinition) error {
	if def.ID == "" {
		return fmt.Errorf("hva id is empty: %w", domain.ErrInvalidArgument)
	}
	return t.repo.PutDefinition(ctx, def)
}

// Definitions lists all registered HVAs sorted by ID.
func (t *Tracker) Definitions(ctx context.Context) ([]domain.HVADefinition, error) {
	return t.repo.ListDefinitions(ctx)
}

// Record stores one occurrence of an HVA performed by a customer. The HVA
// must be defined first. A zero timestamp is replaced with the current time.
func (t *Tracker) Record(ctx context.Context, customerID, hvaID string, ts time.Time, metadata map[string]any) error {
	if _, err := t.repo.GetDefinition(ctx, hvaID); err != nil {
		return fmt.Errorf("record %q: %w", hvaID, err)
	}
	if ts.IsZero() {
		ts = t.now()
	}
	return t.repo.AppendRecord(ctx, domain.HVARecord{
		CustomerID: customerID,
		HVAID:      hvaID,
		Timestamp:  ts,
		Metadata:   metadata,
	})
}

// CustomerHistory returns a customer's occurrences sorted by timestamp.
func (t *Tracker) CustomerHistory(ctx context.Context, customerID string) ([]domain.HVARecord, error) {
	recs, err := t.repo.RecordsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Timestamp.Before(recs[j].Timestamp)
	})
	return recs, nil
}

// CustomerCounts returns how often a customer performed each HVA.
func (t *Tracker) CustomerCounts(ctx context.Context, customerID string) (map[string]int, error) {
	recs, err := t.repo.RecordsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(recs))
	for _, r := range recs {
		counts[r.HVAID]++
	}
	return counts, nil
}

// Summary aggregates one HVA's occurrences across all customers.
func (t *Tracker) Summary(ctx context.Context, hvaID string) (domain.HVASummary, error) {
	if _, err := t.repo.GetDefinition(ctx, hvaID); err != nil {
		return domain.HVASummary{}, fmt.Errorf("summary %q: %w", hvaID, err)
	}

	recs, err := t.repo.Records(ctx)
	if err != nil {
		return domain.HVASummary{}, err
	}

	summary := domain.HVASummary{HVAID: hvaID}
	customers := make(map[string]struct{})
	for _, r := range recs {
		if r.HVAID != hvaID {
			continue
		}
		summary.TotalOccurrences++
		customers[r.CustomerID] = struct{}{}
		if summary.FirstOccurrence.IsZero() || r.Timestamp.Before(summary.FirstOccurrence) {
			summary.FirstOccurrence = r.Timestamp
		}
		if r.Timestamp.After(summary.LastOccurrence) {
			summary.LastOccurrence = r.Timestamp
		}
	}
	summary.UniqueCustomers = len(customers)
	return summary, nil
}

// Top returns the n most frequently performed HVAs across all customers,
// sorted by count descending with ties broken by ID.
func (t *Tracker) Top(ctx context.Context, n int) ([]domain.HVACount, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top n %d: %w", n, domain.ErrInvalidArgument)
	}

	recs, err := t.repo.Records(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range recs {
		counts[r.HVAID]++
	}

	ranked := make([]domain.HVACount, 0, len(counts))
	for id, c := range counts {
		entry := domain.HVACount{HVAID: id, Count: c}
		if def, err := t.repo.GetDefinition(ctx, id); err == nil {
			entry.Name = def.Name
		}
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].HVAID < ranked[j].HVAID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Timeline buckets one HVA's occurrences per day between start and end
// (inclusive). Days without occurrences appear with a zero count, so the
// result always spans the full range.
func (t *Tracker) Timeline(ctx context.Context, hvaID string, start, end time.Time) ([]domain.TimelineBucket, error) {
	if _, err := t.repo.GetDefinition(ctx, hvaID); err != nil {
		return nil, fmt.Errorf("timeline %q: %w", hvaID, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("timeline range end before start: %w", domain.ErrInvalidArgument)
	}

	recs, err := t.repo.Records(ctx)
	if err != nil {
		return nil, err
	}

	startDay := truncateDay(start)
	endDay := truncateDay(end)

	counts := make(map[time.Time]int)
	for _, r := range recs {
		if r.HVAID != hvaID || r.Timestamp.Before(start) || r.Timestamp.After(end) {
			continue
		}
		counts[truncateDay(r.Timestamp)]++
	}

	var buckets []domain.TimelineBucket
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		buckets = append(buckets, domain.TimelineBucket{Date: day, Count: counts[day]})
	}
	return buckets, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
