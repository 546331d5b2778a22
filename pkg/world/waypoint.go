// Package world provides the grid model the robot moves on: waypoints,
// obstacles and the catalogue of objects it can interact with.
package world

import (
	"fmt"
	"math"
)

// Waypoint is an integer grid coordinate. It is comparable and safe to use
// as a map key.
type Waypoint struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Pt is shorthand for Waypoint{X: x, Y: y}.
func Pt(x, y int) Waypoint {
	return Waypoint{X: x, Y: y}
}

// Origin is the robot's reference position.
var Origin = Waypoint{}

// neighborOffsets lists the four-connected moves in N, E, S, W order.
var neighborOffsets = [...]Waypoint{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// Add returns the component-wise sum of w and d.
func (w Waypoint) Add(d Waypoint) Waypoint {
	return Waypoint{X: w.X + d.X, Y: w.Y + d.Y}
}

// Less orders waypoints lexicographically by (X, Y).
func (w Waypoint) Less(other Waypoint) bool {
	if w.X != other.X {
		return w.X < other.X
	}
	return w.Y < other.Y
}

// Manhattan returns the L1 distance between w and other.
func (w Waypoint) Manhattan(other Waypoint) int {
	return absInt(w.X-other.X) + absInt(w.Y-other.Y)
}

// Euclidean returns the straight-line distance between w and other.
func (w Waypoint) Euclidean(other Waypoint) float64 {
	return math.Hypot(float64(other.X-w.X), float64(other.Y-w.Y))
}

// Neighbors4 returns the four orthogonal neighbours of w (N, E, S, W).
func (w Waypoint) Neighbors4() [4]Waypoint {
	var out [4]Waypoint
	for i, d := range neighborOffsets {
		out[i] = w.Add(d)
	}
	return out
}

// String renders the waypoint as "(x, y)".
func (w Waypoint) String() string {
	return fmt.Sprintf("(%d, %d)", w.X, w.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
