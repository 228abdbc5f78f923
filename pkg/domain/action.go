package domain

import "time"

// ActionEvent is one raw customer action (page view, purchase, ticket...)
// before any segment has been assigned. Action events feed the
// segmentation mapper; segment observations feed the transition model.
type ActionEvent struct {
	CustomerID string    `json:"customer_id" yaml:"customer_id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Action     string    `json:"action" yaml:"action"`
}
