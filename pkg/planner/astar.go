package planner

import (
	"container/heap"

	"github.com/teslashibe/go-homebot/pkg/world"
)

// DefaultObstaclePenalty is the heuristic weight added per obstacle cell in
// the 3x3 block around a candidate node.
const DefaultObstaclePenalty = 0.05

// AStar is an A* planner with an obstacle-aware heuristic.
//
// The heuristic is the Euclidean distance to the goal scaled by
// 1 + penalty*n, where n counts blocked cells in the 3x3 block centred on the
// candidate. This biases the frontier away from cluttered regions.
type AStar struct {
	// MaxIterations caps frontier pops. Zero means MaxIterations.
	MaxIterations int

	// ObstaclePenalty is the per-obstacle heuristic weight. Zero means
	// DefaultObstaclePenalty.
	ObstaclePenalty float64
}

// NewAStar returns an A* planner with default limits.
func NewAStar() *AStar {
	return &AStar{
		MaxIterations:   MaxIterations,
		ObstaclePenalty: DefaultObstaclePenalty,
	}
}

// Name implements Planner.
func (a *AStar) Name() string { return KindAStar }

// Budget returns the effective frontier pop cap.
func (a *AStar) Budget() int {
	if a.MaxIterations > 0 {
		return a.MaxIterations
	}
	return MaxIterations
}

func (a *AStar) penalty() float64 {
	if a.ObstaclePenalty > 0 {
		return a.ObstaclePenalty
	}
	return DefaultObstaclePenalty
}

// heuristic estimates the remaining cost from p to goal.
func (a *AStar) heuristic(p, goal world.Waypoint, grid world.ObstacleQuery) float64 {
	blocked := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if grid.IsObstacle(world.Pt(p.X+dx, p.Y+dy)) {
				blocked++
			}
		}
	}
	return p.Euclidean(goal) * (1.0 + a.penalty()*float64(blocked))
}

// Compute implements Planner.
func (a *AStar) Compute(start, goal world.Waypoint, grid world.ObstacleQuery) (Result, error) {
	if grid == nil {
		grid = world.Open
	}
	limit := a.Budget()

	open := &searchQueue{}
	heap.Init(open)
	startH := a.heuristic(start, goal, grid)
	heap.Push(open, &searchNode{point: start, h: startH, f: startH})

	cameFrom := make(map[world.Waypoint]world.Waypoint)
	gScore := map[world.Waypoint]int{start: 0}
	closed := make(map[world.Waypoint]struct{})
	iterations := 0

	for open.Len() > 0 {
		if iterations >= limit {
			return Result{Iterations: iterations}, ErrIterationCap
		}
		iterations++

		current := heap.Pop(open).(*searchNode)
		if current.point == goal {
			return Result{Path: reconstructPath(cameFrom, goal), Iterations: iterations}, nil
		}
		if _, seen := closed[current.point]; seen {
			continue
		}
		closed[current.point] = struct{}{}

		for _, next := range current.point.Neighbors4() {
			if grid.IsObstacle(next) {
				continue
			}
			tentative := current.g + 1
			if prev, ok := gScore[next]; ok && tentative >= prev {
				continue
			}
			cameFrom[next] = current.point
			gScore[next] = tentative
			h := a.heuristic(next, goal, grid)
			heap.Push(open, &searchNode{
				point: next,
				g:     tentative,
				h:     h,
				f:     float64(tentative) + h,
			})
		}
	}
	return Result{Iterations: iterations}, ErrNoPath
}

// reconstructPath walks predecessors back from goal and returns the steps
// in travel order, excluding the start. An empty walk yields [goal].
func reconstructPath(cameFrom map[world.Waypoint]world.Waypoint, goal world.Waypoint) []world.Waypoint {
	path := make([]world.Waypoint, 0)
	node := goal
	for {
		parent, ok := cameFrom[node]
		if !ok {
			break
		}
		path = append(path, node)
		node = parent
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	if len(path) == 0 {
		return []world.Waypoint{goal}
	}
	return path
}

type searchNode struct {
	point world.Waypoint
	g     int
	h     float64
	f     float64
	index int
}

// searchQueue is a min-heap on f, breaking ties on h and then on the
// waypoint order so results are deterministic.
type searchQueue []*searchNode

func (pq searchQueue) Len() int { return len(pq) }

func (pq searchQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}
	return pq[i].point.Less(pq[j].point)
}

func (pq searchQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *searchQueue) Push(x any) {
	n := len(*pq)
	item := x.(*searchNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *searchQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

var (
	_ Planner  = (*AStar)(nil)
	_ Budgeted = (*AStar)(nil)
)
