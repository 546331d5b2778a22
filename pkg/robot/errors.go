package robot

import (
	"errors"
	"fmt"
)

// Sentinel errors for controller failures. None of these escape Tick; they
// reach the log and the event bus fault topic.
var (
	// ErrInvalidCoordinates is returned by ParseWaypoint.
	ErrInvalidCoordinates = errors.New("robot: invalid coordinates")

	// ErrCollaboratorPanic wraps a panic recovered from a planner,
	// environment or actuator.
	ErrCollaboratorPanic = errors.New("robot: collaborator panicked")
)

// guard runs fn and converts a panic into ErrCollaboratorPanic.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCollaboratorPanic, r)
		}
	}()
	return fn()
}
