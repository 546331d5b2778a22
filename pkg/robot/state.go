package robot

// State is the robot's operating mode. Exactly one is active at a time.
type State int

const (
	StateOff State = iota
	StateIdle
	StateMoving
	StateManipulating
	StateCommunicating
	StateCharging
	StateError
)

var stateNames = [...]string{
	StateOff:           "OFF",
	StateIdle:          "IDLE",
	StateMoving:        "MOVING",
	StateManipulating:  "MANIPULATING",
	StateCommunicating: "COMMUNICATING",
	StateCharging:      "CHARGING",
	StateError:         "ERROR",
}

// String returns the upper-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}
