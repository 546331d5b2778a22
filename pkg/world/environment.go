package world

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ObstacleQuery answers whether a grid cell is impassable.
// Planners depend only on this.
type ObstacleQuery interface {
	IsObstacle(p Waypoint) bool
}

// ObstacleFunc adapts a plain function to ObstacleQuery.
type ObstacleFunc func(p Waypoint) bool

// IsObstacle implements ObstacleQuery.
func (f ObstacleFunc) IsObstacle(p Waypoint) bool {
	return f(p)
}

// Open is an ObstacleQuery with no obstacles.
var Open ObstacleQuery = ObstacleFunc(func(Waypoint) bool { return false })

// Object is a catalogued item in the world the robot can pick up.
type Object struct {
	Kind     string   `yaml:"kind" json:"kind"`
	ID       string   `yaml:"id" json:"id"`
	Position Waypoint `yaml:"position" json:"position"`
}

// DefaultObstacles are present in a freshly created Environment.
var DefaultObstacles = []Waypoint{{X: 2, Y: 2}, {X: 3, Y: 3}}

// Sensor reading parameters.
const (
	sensorBaseline = 0.5
	sensorSigma    = 0.1
)

// MaxReadings is the number of most recent sensor readings kept.
const MaxReadings = 64

// Environment holds the obstacle grid, the object catalogue and the
// sensor readings. It is safe for concurrent use.
type Environment struct {
	mu        sync.RWMutex
	obstacles map[Waypoint]struct{}
	objects   []Object          // insertion order, used for tie-breaking
	index     map[string]Object // rebuilt by Sense
	readings  []float64

	// noise returns one gaussian sample for Sense.
	noise func() float64
}

// NewEnvironment creates an environment seeded with DefaultObstacles.
func NewEnvironment() *Environment {
	e := NewEmptyEnvironment()
	for _, p := range DefaultObstacles {
		e.obstacles[p] = struct{}{}
	}
	return e
}

// NewEmptyEnvironment creates an environment with no obstacles or objects.
func NewEmptyEnvironment() *Environment {
	return &Environment{
		obstacles: make(map[Waypoint]struct{}),
		index:     make(map[string]Object),
		noise: func() float64 {
			return rand.NormFloat64() * sensorSigma
		},
	}
}

// SetNoiseSource replaces the gaussian sampler used by Sense.
func (e *Environment) SetNoiseSource(fn func() float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.noise = fn
}

// IsObstacle reports whether p is blocked.
func (e *Environment) IsObstacle(p Waypoint) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.obstacles[p]
	return ok
}

// AddObstacle marks p as blocked.
func (e *Environment) AddObstacle(points ...Waypoint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range points {
		e.obstacles[p] = struct{}{}
	}
}

// RemoveObstacle clears p.
func (e *Environment) RemoveObstacle(p Waypoint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.obstacles, p)
}

// ClearObstacles removes every obstacle.
func (e *Environment) ClearObstacles() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.obstacles = make(map[Waypoint]struct{})
}

// Obstacles returns the blocked cells in (x, y) order.
func (e *Environment) Obstacles() []Waypoint {
	e.mu.RLock()
	out := make([]Waypoint, 0, len(e.obstacles))
	for p := range e.obstacles {
		out = append(out, p)
	}
	e.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// AddObject catalogues a new object of the given kind and returns it.
// The object gets a fresh uuid as its ID.
func (e *Environment) AddObject(kind string, pos Waypoint) Object {
	obj := Object{Kind: kind, ID: uuid.NewString(), Position: pos}
	e.PutObject(obj)
	return obj
}

// PutObject catalogues obj, replacing any object with the same ID.
// An empty ID is filled with a uuid.
func (e *Environment) PutObject(obj Object) Object {
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.objects {
		if e.objects[i].ID == obj.ID {
			e.objects[i] = obj
			e.index[obj.ID] = obj
			return obj
		}
	}
	e.objects = append(e.objects, obj)
	e.index[obj.ID] = obj
	return obj
}

// Object looks up an object by ID in the sensed index.
func (e *Environment) Object(id string) (Object, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	obj, ok := e.index[id]
	return obj, ok
}

// Objects returns the catalogue in insertion order.
func (e *Environment) Objects() []Object {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Object, len(e.objects))
	copy(out, e.objects)
	return out
}

// FindNearest returns the object of the given kind closest to the origin
// by Manhattan distance. Kind matching is case-insensitive; on equal
// distance the first catalogued object wins.
func (e *Environment) FindNearest(kind string) (Object, bool) {
	want := strings.ToLower(strings.TrimSpace(kind))

	e.mu.RLock()
	defer e.mu.RUnlock()

	var (
		nearest Object
		found   bool
		best    = math.MaxInt
	)
	for _, obj := range e.objects {
		if strings.ToLower(obj.Kind) != want {
			continue
		}
		if d := obj.Position.Manhattan(Origin); d < best {
			best = d
			nearest = obj
			found = true
		}
	}
	return nearest, found
}

// Sense takes one noisy range reading and rebuilds the object index.
func (e *Environment) Sense() {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := sensorBaseline + e.noise()
	e.readings = append(e.readings, math.Max(0, math.Min(1, v)))
	if n := len(e.readings); n > MaxReadings {
		e.readings = append(e.readings[:0], e.readings[n-MaxReadings:]...)
	}

	e.index = make(map[string]Object, len(e.objects))
	for _, obj := range e.objects {
		e.index[obj.ID] = obj
	}
}

// Readings returns a copy of the last MaxReadings sensor readings, oldest
// first.
func (e *Environment) Readings() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]float64, len(e.readings))
	copy(out, e.readings)
	return out
}

// Ensure Environment implements ObstacleQuery
var _ ObstacleQuery = (*Environment)(nil)
