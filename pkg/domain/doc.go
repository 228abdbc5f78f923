// Package domain contains the core entities of the Meander engine:
// journey observations, paths, high value actions (HVAs), interventions,
// the shared error taxonomy and the lifecycle hook contracts.
//
// The package is dependency-free so it can be imported by every layer
// (model, adapters, CLI) without cycles.
package domain
