package domain

import "errors"

// ErrNotFitted is returned when a prediction or search is attempted before
// a successful Fit populated the model.
var ErrNotFitted = errors.New("model not fitted")

// ErrUnknownSegment is returned when a segment label is not part of the
// fitted vocabulary.
var ErrUnknownSegment = errors.New("unknown segment")

// ErrInvalidArgument is returned for malformed inputs: non-positive beam
// width, negative step counts, or unparsable event records.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNoTransitions is returned when the queried segment is absorbing:
// it was never observed transitioning out, so its matrix row is all zero
// and there is no defined next state.
var ErrNoTransitions = errors.New("no outbound transitions")

// ErrHVANotDefined is returned when an HVA record references an ID that
// has no definition in the repository.
var ErrHVANotDefined = errors.New("hva not defined")

// ErrInterventionNotFound is returned when a catalog lookup misses.
var ErrInterventionNotFound = errors.New("intervention not found")
