// Package mazeerr defines the error taxonomy shared across the decision
// core. Every kind here is handled locally by its owning package; none of
// them ever reach the tick driver (see coordinator.Coordinator.NextMove).
package mazeerr

import "errors"

var (
	// ErrNotReady means the maze or self position is not yet known.
	ErrNotReady = errors.New("mazeerr: not ready")

	// ErrNoPlan means the planner produced no positive-utility node.
	ErrNoPlan = errors.New("mazeerr: no plan")

	// ErrInvalidInput means a malformed row, negative dimension, or
	// out-of-bounds coordinate arrived at a boundary. world.Dispatcher's
	// event callbacks log and drop it; it never reaches the tick driver.
	ErrInvalidInput = errors.New("mazeerr: invalid input")
)
