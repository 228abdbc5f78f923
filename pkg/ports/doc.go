// Package ports defines the boundary interfaces of the Meander engine.
//
// The core model and trackers depend only on these contracts; concrete
// backends live under pkg/adapters (in-memory) and internal/adapters
// (Redis, file-based event logs). Contract test suites for the
// repositories live in pkg/ports/tests and are run by every backend.
package ports
