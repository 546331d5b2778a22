// Package memory provides the robot's working memory.
//
// Memory is organized into two categories:
//   - Breadcrumbs: an append-only action log read back last-in-first-out
//   - Facts: free-form notes about the world
//
// Nothing here is used for planning; it is an audit trail of what the
// robot did.
package memory

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Breadcrumb records one executed action.
type Breadcrumb struct {
	ID     uuid.UUID `json:"id"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Memory is the robot's action log and fact list.
type Memory struct {
	// Breadcrumbs are stored oldest first.
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`

	// Facts are stored in the order they were learned.
	Facts []string `json:"facts"`

	// now is the clock (not serialized)
	now func() time.Time `json:"-"`

	// mu protects concurrent access
	mu sync.RWMutex `json:"-"`
}

// New creates an empty memory.
func New() *Memory {
	return &Memory{
		Breadcrumbs: make([]Breadcrumb, 0),
		Facts:       make([]string, 0),
		now:         time.Now,
	}
}

// Push appends an action to the log.
func (m *Memory) Push(action string) Breadcrumb {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := Breadcrumb{ID: uuid.New(), Action: action, At: m.clock()}
	m.Breadcrumbs = append(m.Breadcrumbs, b)
	return b
}

// Last pops the most recent action.
func (m *Memory) Last() (Breadcrumb, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.Breadcrumbs)
	if n == 0 {
		return Breadcrumb{}, false
	}
	b := m.Breadcrumbs[n-1]
	m.Breadcrumbs = m.Breadcrumbs[:n-1]
	return b, true
}

// Peek returns the most recent action without removing it.
func (m *Memory) Peek() (Breadcrumb, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.Breadcrumbs)
	if n == 0 {
		return Breadcrumb{}, false
	}
	return m.Breadcrumbs[n-1], true
}

// Len returns the number of logged actions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Breadcrumbs)
}

// Actions returns the logged action names, oldest first.
func (m *Memory) Actions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.Breadcrumbs))
	for i, b := range m.Breadcrumbs {
		out[i] = b.Action
	}
	return out
}

// Remember stores a fact.
func (m *Memory) Remember(fact string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Facts = append(m.Facts, fact)
}

// KnownFacts returns a copy of the stored facts.
func (m *Memory) KnownFacts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.Facts))
	copy(out, m.Facts)
	return out
}

// ToJSON serializes memory to JSON bytes.
func (m *Memory) ToJSON() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return json.MarshalIndent(m, "", "  ")
}

// Clear resets all memory to empty state.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Breadcrumbs = make([]Breadcrumb, 0)
	m.Facts = make([]string, 0)
}

// Stats returns counts of items in each category.
func (m *Memory) Stats() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]int{
		"breadcrumbs": len(m.Breadcrumbs),
		"facts":       len(m.Facts),
	}
}

func (m *Memory) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
