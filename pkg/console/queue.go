package console

import (
	"sync"

	"github.com/teslashibe/go-homebot/pkg/robot"
)

// Queue is a FIFO of pending command records. It is safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	items []robot.Record
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends r.
func (q *Queue) Enqueue(r robot.Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, r)
}

// Dequeue removes and returns the oldest record.
func (q *Queue) Dequeue() (robot.Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return robot.Record{}, false
	}
	r := q.items[0]
	q.items[0] = robot.Record{}
	q.items = q.items[1:]
	return r, true
}

// Len returns the number of pending records.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
