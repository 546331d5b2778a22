package actuator

import "errors"

// Sentinel errors for actuator failures.
var (
	// ErrGraspFailed is returned when the gripper could not secure the
	// object. It is a structural failure, not a fault.
	ErrGraspFailed = errors.New("actuator: grasp failed")

	// ErrNothingToUndo is returned when there is no grasp to release.
	ErrNothingToUndo = errors.New("actuator: no grasp to undo")
)
