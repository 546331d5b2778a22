package planner

import "errors"

// Sentinel errors for planning failures. Callers treat both ErrNoPath and
// ErrIterationCap as "no route".
var (
	// ErrNoPath is returned when the search space is exhausted or the
	// planner cannot make progress.
	ErrNoPath = errors.New("planner: no path")

	// ErrIterationCap is returned when the search budget runs out before
	// the goal is reached.
	ErrIterationCap = errors.New("planner: iteration cap reached")

	// ErrUnknownPlanner is returned by New for an unregistered kind.
	ErrUnknownPlanner = errors.New("planner: unknown planner")
)

// IsNoRoute reports whether err means the goal is unreachable, either
// structurally or because the budget ran out.
func IsNoRoute(err error) bool {
	return errors.Is(err, ErrNoPath) || errors.Is(err, ErrIterationCap)
}
