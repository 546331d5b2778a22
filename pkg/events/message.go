// Package events provides a synchronous in-process publish/subscribe bus.
//
// The controller publishes state changes, completed actions, plans and
// faults here. It doubles as the diagnostic channel: errors that are
// swallowed from caller-facing status lines are still delivered on the
// fault topic.
package events

import "time"

// Topic names a stream of events.
type Topic string

// Topics published by the controller.
const (
	TopicState   Topic = "state"
	TopicAction  Topic = "action"
	TopicPlan    Topic = "plan"
	TopicFault   Topic = "fault"
	TopicDocking Topic = "docking"
	TopicCharge  Topic = "charge"
	TopicTick    Topic = "tick"
)

// Event is one published message.
type Event struct {
	Topic   Topic
	Time    time.Time
	Payload any
}

// StateChange is published on TopicState.
type StateChange struct {
	RobotID string
	From    string
	To      string
}

// Action is published on TopicAction after a successful foreground command.
type Action struct {
	RobotID string
	Name    string
	Cost    int
	Battery int
}

// Plan is published on TopicPlan after every planning attempt.
type Plan struct {
	RobotID    string
	Planner    string
	Iterations int
	Steps      int
	Err        error
}

// Fault is published on TopicFault when a command fails.
type Fault struct {
	RobotID string
	Op      string
	Err     error
}

// Docking is published on TopicDocking when docking starts or completes.
type Docking struct {
	RobotID string
	Started bool
	Battery int
}

// Charge is published on TopicCharge for every charging tick.
type Charge struct {
	RobotID  string
	Battery  int
	Complete bool
}

// Tick is published on TopicTick once per processed command.
type Tick struct {
	RobotID string
	Command string
	State   string
	Status  string
}
