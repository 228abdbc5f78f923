package domain

import "time"

// Intervention is a marketing action that can be applied to customers,
// kept in a catalog keyed by ID.
type Intervention struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Outcome labels for intervention results.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// InterventionResult records the outcome of applying an intervention to a
// customer at a point in time.
type InterventionResult struct {
	InterventionID string    `json:"intervention_id"`
	CustomerID     string    `json:"customer_id"`
	Timestamp      time.Time `json:"timestamp"`
	Outcome        string    `json:"outcome"`
}

// InterventionSummary aggregates the recorded results of one intervention.
type InterventionSummary struct {
	InterventionID    string    `json:"intervention_id"`
	Name              string    `json:"name,omitempty"`
	TotalApplications int       `json:"total_applications"`
	SuccessRate       float64   `json:"success_rate"`
	UniqueCustomers   int       `json:"unique_customers"`
	FirstApplication  time.Time `json:"first_application,omitzero"`
	LastApplication   time.Time `json:"last_application,omitzero"`
}
