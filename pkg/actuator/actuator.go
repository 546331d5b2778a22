// Package actuator provides the robot's manipulator and communicator
// adapters.
//
// The controller treats both as fallible black boxes: any returned error
// is a failure of the current command and never stops the control loop.
package actuator

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/teslashibe/go-homebot/internal/log"
)

// Manipulator grasps objects.
type Manipulator interface {
	// Pick attempts to grasp the object with the given ID. A nil error
	// means the grasp was recorded; ErrGraspFailed means the gripper
	// missed; any other error is an actuator fault.
	Pick(objectID string) error
}

// Communicator emits text to people around the robot.
type Communicator interface {
	Speak(text string) error
}

// Gripper is an in-memory Manipulator that records every grasp.
type Gripper struct {
	mu       sync.Mutex
	history  []string
	failNext bool
}

// NewGripper creates an empty gripper.
func NewGripper() *Gripper {
	return &Gripper{}
}

// Pick implements Manipulator.
func (g *Gripper) Pick(objectID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failNext {
		g.failNext = false
		return fmt.Errorf("pick %s: %w", objectID, ErrGraspFailed)
	}
	g.history = append(g.history, objectID)
	return nil
}

// FailNext makes the next Pick fail with ErrGraspFailed.
func (g *Gripper) FailNext() {
	g.mu.Lock()
	g.failNext = true
	g.mu.Unlock()
}

// UndoLastGrasp releases the most recent grasp.
func (g *Gripper) UndoLastGrasp() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	g.history = g.history[:len(g.history)-1]
	return nil
}

// History returns the IDs grasped so far, oldest first.
func (g *Gripper) History() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.history))
	copy(out, g.history)
	return out
}

// Speaker is a Communicator that writes utterances to a writer.
type Speaker struct {
	out    io.Writer
	logger *slog.Logger
}

// NewSpeaker creates a speaker writing to w (stdout when nil).
func NewSpeaker(w io.Writer) *Speaker {
	if w == nil {
		w = os.Stdout
	}
	return &Speaker{out: w, logger: log.Component("speaker")}
}

// Speak implements Communicator.
func (s *Speaker) Speak(text string) error {
	s.logger.Debug("speak", "text", text)
	if _, err := fmt.Fprintf(s.out, "Speaking %s\n", text); err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}

// Display shows text on the robot's screen.
func (s *Speaker) Display(text string) error {
	s.logger.Debug("display", "text", text)
	if _, err := fmt.Fprintf(s.out, "Displaying %s\n", text); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

var (
	_ Manipulator  = (*Gripper)(nil)
	_ Communicator = (*Speaker)(nil)
)
