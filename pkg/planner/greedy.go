package planner

import "github.com/teslashibe/go-homebot/pkg/world"

// Greedy is a naive planner that always takes the single axis step that
// reduces the Manhattan distance to the goal, preferring the x axis. It
// gives up as soon as both improving axes are blocked.
type Greedy struct {
	// MaxIterations caps the number of steps. Zero means GreedyMaxIterations.
	MaxIterations int
}

// NewGreedy returns a greedy planner with the default step cap.
func NewGreedy() *Greedy {
	return &Greedy{MaxIterations: GreedyMaxIterations}
}

// Name implements Planner.
func (g *Greedy) Name() string { return KindGreedy }

// Budget returns the effective step cap.
func (g *Greedy) Budget() int {
	if g.MaxIterations > 0 {
		return g.MaxIterations
	}
	return GreedyMaxIterations
}

// Compute implements Planner.
func (g *Greedy) Compute(start, goal world.Waypoint, grid world.ObstacleQuery) (Result, error) {
	if grid == nil {
		grid = world.Open
	}
	limit := g.Budget()

	if start == goal {
		return Result{Path: []world.Waypoint{goal}}, nil
	}

	current := start
	// The capacity hint never exceeds the step cap; far or overflowing
	// goals hit ErrIterationCap long before the slice would grow.
	hint := limit
	if d := current.Manhattan(goal); d >= 0 && d < limit {
		hint = d
	}
	path := make([]world.Waypoint, 0, hint)
	iterations := 0
	for current != goal {
		if iterations >= limit {
			return Result{Iterations: iterations}, ErrIterationCap
		}
		iterations++

		next, ok := greedyStep(current, goal, grid)
		if !ok {
			return Result{Iterations: iterations}, ErrNoPath
		}
		current = next
		path = append(path, current)
	}
	return Result{Path: path, Iterations: iterations}, nil
}

// greedyStep picks the first free improving move in +x, -x, +y, -y order.
func greedyStep(p, goal world.Waypoint, grid world.ObstacleQuery) (world.Waypoint, bool) {
	candidates := [...]struct {
		ok   bool
		next world.Waypoint
	}{
		{p.X < goal.X, world.Pt(p.X+1, p.Y)},
		{p.X > goal.X, world.Pt(p.X-1, p.Y)},
		{p.Y < goal.Y, world.Pt(p.X, p.Y+1)},
		{p.Y > goal.Y, world.Pt(p.X, p.Y-1)},
	}
	for _, c := range candidates {
		if c.ok && !grid.IsObstacle(c.next) {
			return c.next, true
		}
	}
	return p, false
}

var (
	_ Planner  = (*Greedy)(nil)
	_ Budgeted = (*Greedy)(nil)
)
