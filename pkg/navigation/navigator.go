// Package navigation owns the robot's planned route and hands it out one
// step at a time.
package navigation

import (
	"fmt"

	"github.com/teslashibe/go-homebot/pkg/planner"
	"github.com/teslashibe/go-homebot/pkg/world"
)

// Navigator wraps a Planner and keeps the steps of the last successful plan
// in a FIFO queue. It is not safe for concurrent use.
type Navigator struct {
	planner    planner.Planner
	queue      []world.Waypoint
	iterations int
}

// New creates a navigator using p. A nil planner defaults to A*.
func New(p planner.Planner) *Navigator {
	if p == nil {
		p = planner.NewAStar()
	}
	return &Navigator{planner: p}
}

// Planner returns the current strategy.
func (n *Navigator) Planner() planner.Planner {
	return n.planner
}

// SetPlanner swaps the strategy and drops any queued route.
func (n *Navigator) SetPlanner(p planner.Planner) {
	if p == nil {
		p = planner.NewAStar()
	}
	n.planner = p
	n.Reset()
}

// Plan computes a route from start to goal and replaces the queue with it.
// On failure the queue is left empty.
func (n *Navigator) Plan(start, goal world.Waypoint, grid world.ObstacleQuery) error {
	n.queue = nil

	res, err := n.planner.Compute(start, goal, grid)
	n.iterations = res.Iterations
	if err != nil {
		return fmt.Errorf("plan %v -> %v with %s: %w", start, goal, n.planner.Name(), err)
	}
	if !res.Found() {
		return fmt.Errorf("plan %v -> %v with %s: %w", start, goal, n.planner.Name(), planner.ErrNoPath)
	}

	n.queue = append(make([]world.Waypoint, 0, len(res.Path)), res.Path...)
	return nil
}

// Next pops the next step of the route.
func (n *Navigator) Next() (world.Waypoint, bool) {
	if len(n.queue) == 0 {
		return world.Waypoint{}, false
	}
	step := n.queue[0]
	n.queue = n.queue[1:]
	return step, true
}

// Iterations returns the search iterations used by the last Plan call.
func (n *Navigator) Iterations() int {
	return n.iterations
}

// TimedOut reports whether the last Plan call used up the current
// planner's iteration budget.
func (n *Navigator) TimedOut() bool {
	return n.iterations >= planner.BudgetOf(n.planner)
}

// Remaining returns the number of queued steps.
func (n *Navigator) Remaining() int {
	return len(n.queue)
}

// Route returns a copy of the queued steps.
func (n *Navigator) Route() []world.Waypoint {
	out := make([]world.Waypoint, len(n.queue))
	copy(out, n.queue)
	return out
}

// Reset drops the queued route.
func (n *Navigator) Reset() {
	n.queue = nil
	n.iterations = 0
}

// Follow plans a route and immediately drains it, handing each step to
// drive. It stops at the first drive error.
func (n *Navigator) Follow(start, goal world.Waypoint, grid world.ObstacleQuery, drive func(world.Waypoint) error) error {
	if err := n.Plan(start, goal, grid); err != nil {
		return err
	}
	for {
		step, ok := n.Next()
		if !ok {
			return nil
		}
		if drive == nil {
			continue
		}
		if err := drive(step); err != nil {
			return fmt.Errorf("drive to %v: %w", step, err)
		}
	}
}
