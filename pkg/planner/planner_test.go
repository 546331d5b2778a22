package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-homebot/pkg/world"
)

func blocked(points ...world.Waypoint) world.ObstacleQuery {
	set := make(map[world.Waypoint]bool, len(points))
	for _, p := range points {
		set[p] = true
	}
	return world.ObstacleFunc(func(p world.Waypoint) bool { return set[p] })
}

// requireValidRoute checks that path walks from start to goal one
// orthogonal step at a time without touching an obstacle.
func requireValidRoute(t *testing.T, start, goal world.Waypoint, path []world.Waypoint, grid world.ObstacleQuery) {
	t.Helper()
	require.NotEmpty(t, path)
	require.Equal(t, goal, path[len(path)-1])
	prev := start
	for _, step := range path {
		require.Equal(t, 1, prev.Manhattan(step), "non-adjacent step %v -> %v", prev, step)
		require.False(t, grid.IsObstacle(step), "route crosses obstacle %v", step)
		prev = step
	}
}

func TestAStar_StartIsGoal(t *testing.T) {
	res, err := NewAStar().Compute(world.Pt(4, 4), world.Pt(4, 4), world.Open)
	require.NoError(t, err)
	assert.Equal(t, []world.Waypoint{world.Pt(4, 4)}, res.Path)
	assert.Equal(t, 1, res.Iterations)
	assert.True(t, res.Found())
}

func TestAStar_OpenGridIsOptimal(t *testing.T) {
	tests := []struct {
		name        string
		start, goal world.Waypoint
	}{
		{"east", world.Pt(0, 0), world.Pt(6, 0)},
		{"diagonal", world.Pt(0, 0), world.Pt(5, -3)},
		{"negative", world.Pt(2, 2), world.Pt(-4, -7)},
		{"far", world.Pt(0, 0), world.Pt(20, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewAStar().Compute(tt.start, tt.goal, world.Open)
			require.NoError(t, err)
			requireValidRoute(t, tt.start, tt.goal, res.Path, world.Open)
			assert.Len(t, res.Path, tt.start.Manhattan(tt.goal))
			assert.Less(t, res.Iterations, MaxIterations)
		})
	}
}

func TestAStar_StraightLine(t *testing.T) {
	res, err := NewAStar().Compute(world.Pt(0, 0), world.Pt(0, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, []world.Waypoint{world.Pt(0, 1), world.Pt(0, 2)}, res.Path)
}

func TestAStar_DetoursAroundWall(t *testing.T) {
	var wall []world.Waypoint
	for y := -2; y <= 2; y++ {
		wall = append(wall, world.Pt(1, y))
	}
	grid := blocked(wall...)

	res, err := NewAStar().Compute(world.Pt(0, 0), world.Pt(2, 0), grid)
	require.NoError(t, err)
	requireValidRoute(t, world.Pt(0, 0), world.Pt(2, 0), res.Path, grid)
	assert.GreaterOrEqual(t, len(res.Path), 8)
}

func TestAStar_DefaultEnvironment(t *testing.T) {
	env := world.NewEnvironment()
	res, err := NewAStar().Compute(world.Pt(0, 0), world.Pt(4, 4), env)
	require.NoError(t, err)
	requireValidRoute(t, world.Pt(0, 0), world.Pt(4, 4), res.Path, env)
}

func TestAStar_SurroundedGoalHasNoPath(t *testing.T) {
	goal := world.Pt(5, 5)
	ring := goal.Neighbors4()
	grid := blocked(append(ring[:], goal)...)

	res, err := NewAStar().Compute(world.Pt(0, 0), goal, grid)
	require.Error(t, err)
	assert.True(t, IsNoRoute(err))
	assert.ErrorIs(t, err, ErrIterationCap)
	assert.False(t, res.Found())
	assert.Equal(t, MaxIterations, res.Iterations)
}

func TestAStar_EnclosedStartExhaustsFrontier(t *testing.T) {
	start := world.Pt(0, 0)
	ring := start.Neighbors4()
	grid := blocked(ring[:]...)

	res, err := NewAStar().Compute(start, world.Pt(3, 3), grid)
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Equal(t, 1, res.Iterations)
	assert.Nil(t, res.Path)
}

func TestAStar_CustomBudget(t *testing.T) {
	a := &AStar{MaxIterations: 3}
	res, err := a.Compute(world.Pt(0, 0), world.Pt(50, 50), world.Open)
	assert.ErrorIs(t, err, ErrIterationCap)
	assert.Equal(t, 3, res.Iterations)
}

func TestAStar_HeuristicPenalisesClutter(t *testing.T) {
	a := NewAStar()
	goal := world.Pt(10, 0)
	clear := a.heuristic(world.Pt(0, 0), goal, world.Open)
	cluttered := a.heuristic(world.Pt(0, 0), goal, blocked(world.Pt(1, 1), world.Pt(-1, -1)))

	assert.InDelta(t, 10.0, clear, 1e-9)
	assert.InDelta(t, 11.0, cluttered, 1e-9)
}

func TestGreedy_OpenGrid(t *testing.T) {
	res, err := NewGreedy().Compute(world.Pt(0, 0), world.Pt(2, 3), world.Open)
	require.NoError(t, err)
	assert.Equal(t, []world.Waypoint{
		world.Pt(1, 0), world.Pt(2, 0), world.Pt(2, 1), world.Pt(2, 2), world.Pt(2, 3),
	}, res.Path)
	assert.Equal(t, 5, res.Iterations)
}

func TestGreedy_FallsBackToYAxis(t *testing.T) {
	grid := blocked(world.Pt(1, 0))
	res, err := NewGreedy().Compute(world.Pt(0, 0), world.Pt(2, 2), grid)
	require.NoError(t, err)
	assert.Equal(t, []world.Waypoint{
		world.Pt(0, 1), world.Pt(1, 1), world.Pt(2, 1), world.Pt(2, 2),
	}, res.Path)
}

func TestGreedy_BlockedOnBothAxes(t *testing.T) {
	grid := blocked(world.Pt(1, 0), world.Pt(0, 1))
	res, err := NewGreedy().Compute(world.Pt(0, 0), world.Pt(2, 2), grid)
	assert.ErrorIs(t, err, ErrNoPath)
	assert.False(t, res.Found())
	assert.Equal(t, 1, res.Iterations)
}

func TestGreedy_StartIsGoal(t *testing.T) {
	res, err := NewGreedy().Compute(world.Pt(1, 1), world.Pt(1, 1), world.Open)
	require.NoError(t, err)
	assert.Equal(t, []world.Waypoint{world.Pt(1, 1)}, res.Path)
}

func TestGreedy_StepCap(t *testing.T) {
	res, err := NewGreedy().Compute(world.Pt(0, 0), world.Pt(300, 0), world.Open)
	assert.ErrorIs(t, err, ErrIterationCap)
	assert.Equal(t, GreedyMaxIterations, res.Iterations)
}

func TestBudgetOf(t *testing.T) {
	assert.Equal(t, MaxIterations, BudgetOf(NewAStar()))
	assert.Equal(t, GreedyMaxIterations, BudgetOf(NewGreedy()))
	assert.Equal(t, GreedyMaxIterations, BudgetOf(&Greedy{}))
	assert.Equal(t, 7, BudgetOf(&AStar{MaxIterations: 7}))
}

func TestPlanners_FarGoalsStopAtCap(t *testing.T) {
	goals := []world.Waypoint{
		world.Pt(20_000_000_000, 20_000_000_000),
		world.Pt(1<<62, 1<<62), // Manhattan distance overflows int
	}
	for _, p := range []Planner{NewGreedy(), NewAStar()} {
		for _, goal := range goals {
			var (
				res Result
				err error
			)
			require.NotPanics(t, func() { res, err = p.Compute(world.Origin, goal, world.Open) }, "%s %v", p.Name(), goal)
			assert.ErrorIs(t, err, ErrIterationCap, "%s %v", p.Name(), goal)
			assert.False(t, res.Found())
		}
	}
}

func TestNew(t *testing.T) {
	p, err := New(" AStar ")
	require.NoError(t, err)
	assert.Equal(t, KindAStar, p.Name())

	p, err = New("greedy")
	require.NoError(t, err)
	assert.Equal(t, KindGreedy, p.Name())

	_, err = New("rrt")
	assert.ErrorIs(t, err, ErrUnknownPlanner)

	assert.Equal(t, []string{KindAStar, KindGreedy}, Kinds())
}
