package interventions

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/ports"
)

// Analyzer records intervention outcomes and computes success statistics.
type Analyzer struct {
	repo ports.InterventionRepository
	now  func() time.Time
}

// NewAnalyzer creates an analyzer over the given repository.
func NewAnalyzer(repo ports.InterventionRepository) *Analyzer {
	return &Analyzer{repo: repo, now: time.Now}
}

// RecordResult stores the outcome of applying an intervention to a
// customer. The intervention must exist in the catalog and the outcome
// must be OutcomeSuccess or OutcomeFailure. A zero timestamp is replaced
// with the current time.
func (a *Analyzer) RecordResult(ctx context.Context, interventionID, customerID string, ts time.Time, outcome string) error {
	if outcome != domain.OutcomeSuccess && outcome != domain.OutcomeFailure {
		return fmt.Errorf("outcome %q: %w", outcome, domain.ErrInvalidArgument)
	}
	if _, err := a.repo.Get(ctx, interventionID); err != nil {
		return fmt.Errorf("record result %q: %w", interventionID, err)
	}
	if ts.IsZero() {
		ts = a.now()
	}
	return a.repo.AppendResult(ctx, domain.InterventionResult{
		InterventionID: interventionID,
		CustomerID:     customerID,
		Timestamp:      ts,
		Outcome:        outcome,
	})
}

// SuccessRate returns the fraction of recorded applications that
// succeeded. An intervention without recorded results has a rate of 0.
func (a *Analyzer) SuccessRate(ctx context.Context, interventionID string) (float64, error) {
	results, err := a.repo.ResultsByIntervention(ctx, interventionID)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	var successes int
	for _, r := range results {
		if r.Outcome == domain.OutcomeSuccess {
			successes++
		}
	}
	return float64(successes) / float64(len(results)), nil
}

// Summary aggregates the recorded results of one intervention.
func (a *Analyzer) Summary(ctx context.Context, interventionID string) (domain.InterventionSummary, error) {
	iv, err := a.repo.Get(ctx, interventionID)
	if err != nil {
		return domain.InterventionSummary{}, fmt.Errorf("summary %q: %w", interventionID, err)
	}

	results, err := a.repo.ResultsByIntervention(ctx, interventionID)
	if err != nil {
		return domain.InterventionSummary{}, err
	}

	summary := domain.InterventionSummary{
		InterventionID:    interventionID,
		Name:              iv.Name,
		TotalApplications: len(results),
	}

	customers := make(map[string]struct{})
	var successes int
	for _, r := range results {
		customers[r.CustomerID] = struct{}{}
		if r.Outcome == domain.OutcomeSuccess {
			successes++
		}
		if summary.FirstApplication.IsZero() || r.Timestamp.Before(summary.FirstApplication) {
			summary.FirstApplication = r.Timestamp
		}
		if r.Timestamp.After(summary.LastApplication) {
			summary.LastApplication = r.Timestamp
		}
	}
	summary.UniqueCustomers = len(customers)
	if len(results) > 0 {
		summary.SuccessRate = float64(successes) / float64(len(results))
	}
	return summary, nil
}

// Compare summarizes several interventions, sorted by success rate
// descending with ties broken by ID. Unknown IDs fail the whole call.
func (a *Analyzer) Compare(ctx context.Context, interventionIDs []string) ([]domain.InterventionSummary, error) {
	summaries := make([]domain.InterventionSummary, 0, len(interventionIDs))
	for _, id := range interventionIDs {
		s, err := a.Summary(ctx, id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].SuccessRate != summaries[j].SuccessRate {
			return summaries[i].SuccessRate > summaries[j].SuccessRate
		}
		return summaries[i].InterventionID < summaries[j].InterventionID
	})
	return summaries, nil
}

// CustomerHistory returns all intervention results for one customer
// sorted by timestamp.
func (a *Analyzer) CustomerHistory(ctx context.Context, customerID string) ([]domain.InterventionResult, error) {
	results, err := a.repo.Results(ctx)
	if err != nil {
		return nil, err
	}

	var history []domain.InterventionResult
	for _, r := range results {
		if r.CustomerID == customerID {
			history = append(history, r)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	return history, nil
}
