/*
Package markov implements the segment transition model: a discrete-time
Markov chain fitted from historical customer journey observations.

The model is built once by Fit and is immutable afterwards, so a single
instance can serve concurrent read-only predictions without locking.
Refitting means building a new Model and swapping the reference; the
package never mutates a fitted model in place.

Three inference surfaces share the fitted matrix:

  - PredictNext / PredictPath: greedy, locally-optimal walks.
  - TransitionProbabilities: the full outbound distribution of a segment.
  - TopPaths: bounded-width (beam) enumeration of the K most probable
    fixed-length paths.

Rows of the transition matrix sum to 1.0, except rows of absorbing
segments (never observed transitioning out), which stay all zero. A zero
row means "no known next state": greedy prediction fails with
domain.ErrNoTransitions rather than inventing a uniform fallback.
*/
package markov
