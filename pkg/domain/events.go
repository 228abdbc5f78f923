package domain

import (
	"context"
	"time"
)

// EventType defines the category of a model lifecycle event.
type EventType string

const (
	EventFit     EventType = "fit"
	EventPredict EventType = "predict"
	EventSearch  EventType = "search"
)

// EventBase contains common fields for all lifecycle events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FitEvent is emitted after a model fit completes.
type FitEvent struct {
	EventBase
	Observations int `json:"observations"`
	Segments     int `json:"segments"`
}

// PredictEvent is emitted for each single-step or greedy prediction.
type PredictEvent struct {
	EventBase
	Segment string `json:"segment"`
	Steps   int    `json:"steps"`
	IsError bool   `json:"is_error,omitempty"`
}

// SearchEvent is emitted after a beam search completes.
type SearchEvent struct {
	EventBase
	Segment  string        `json:"segment"`
	Steps    int           `json:"steps"`
	TopK     int           `json:"top_k"`
	Results  int           `json:"results"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability. All fields are
// optional; nil hooks are skipped. Hooks run synchronously on the calling
// goroutine and must be fast.
type LifecycleHooks struct {
	OnFit     func(context.Context, *FitEvent)
	OnPredict func(context.Context, *PredictEvent)
	OnSearch  func(context.Context, *SearchEvent)
}
