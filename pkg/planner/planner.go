// Package planner provides interchangeable grid path-planning strategies.
//
// Every planner satisfies the same contract: given a start, a goal and an
// obstacle query it returns the ordered steps from (exclusive) start to
// (inclusive) goal, or an error when no route is found within its budget.
package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teslashibe/go-homebot/pkg/world"
)

// MaxIterations bounds the number of A* frontier pops per Compute call.
const MaxIterations = 1000

// GreedyMaxIterations bounds the number of greedy steps per Compute call.
const GreedyMaxIterations = 200

// Result is the outcome of a Compute call. Iterations is filled in even
// when Compute fails.
type Result struct {
	Path       []world.Waypoint
	Iterations int
}

// Found reports whether the result carries a route.
func (r Result) Found() bool {
	return len(r.Path) > 0
}

// Planner computes routes on a four-connected grid.
type Planner interface {
	// Name identifies the strategy (e.g. "astar").
	Name() string

	// Compute plans a route from start to goal avoiding obstacles.
	Compute(start, goal world.Waypoint, grid world.ObstacleQuery) (Result, error)
}

// Budgeted is implemented by planners with an iteration cap.
type Budgeted interface {
	Budget() int
}

// BudgetOf returns p's iteration cap, or MaxIterations when p does not
// report one.
func BudgetOf(p Planner) int {
	if b, ok := p.(Budgeted); ok {
		if n := b.Budget(); n > 0 {
			return n
		}
	}
	return MaxIterations
}

// Registered planner kinds.
const (
	KindAStar  = "astar"
	KindGreedy = "greedy"
)

var registry = map[string]func() Planner{
	KindAStar:  func() Planner { return NewAStar() },
	KindGreedy: func() Planner { return NewGreedy() },
}

// New returns a planner by kind name (case-insensitive).
func New(kind string) (Planner, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlanner, kind)
	}
	return ctor(), nil
}

// Kinds lists the registered planner kinds in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
