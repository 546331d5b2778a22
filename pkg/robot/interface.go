// Package robot provides the control core of the home robot: a finite
// state machine that processes one command per tick.
//
// The controller depends on small, focused interfaces for its
// collaborators so each can be swapped or faked independently.
package robot

import (
	"github.com/teslashibe/go-homebot/pkg/actuator"
	"github.com/teslashibe/go-homebot/pkg/world"
)

// Environment is the read-mostly view of the world the controller needs.
// Sensing refresh is owned by the environment; the controller only
// triggers it.
type Environment interface {
	world.ObstacleQuery
	FindNearest(kind string) (world.Object, bool)
	Sense()
}

// Manipulator is re-exported for option signatures.
type Manipulator = actuator.Manipulator

// Communicator is re-exported for option signatures.
type Communicator = actuator.Communicator

// Ensure world.Environment implements Environment
var _ Environment = (*world.Environment)(nil)
