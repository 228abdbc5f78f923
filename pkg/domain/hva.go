package domain

import "time"

// HVADefinition describes a High Value Action: a trackable customer action
// the business considers valuable (e.g. "completed onboarding").
type HVADefinition struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Measurement documents how occurrences of the action are counted.
	Measurement string `json:"measurement,omitempty" yaml:"measurement,omitempty"`
}

// HVARecord is one occurrence of an HVA performed by a customer.
type HVARecord struct {
	CustomerID string         `json:"customer_id"`
	HVAID      string         `json:"hva_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// HVASummary aggregates the occurrences of one HVA across all customers.
type HVASummary struct {
	HVAID            string    `json:"hva_id"`
	TotalOccurrences int       `json:"total_occurrences"`
	UniqueCustomers  int       `json:"unique_customers"`
	FirstOccurrence  time.Time `json:"first_occurrence,omitzero"`
	LastOccurrence   time.Time `json:"last_occurrence,omitzero"`
}

// HVACount pairs an HVA with its occurrence count, used for top-N rankings.
type HVACount struct {
	HVAID string `json:"hva_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TimelineBucket is one day of an HVA timeline with its occurrence count.
// Days without occurrences appear with a zero count.
type TimelineBucket struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}
