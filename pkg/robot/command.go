package robot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teslashibe/go-homebot/pkg/world"
)

// Record is the raw command shape produced by a front end: a type word and
// a free-form argument string.
type Record struct {
	Type string `json:"type"`
	Args string `json:"args"`
}

// Command is a decoded command. The set of implementations is closed; use
// Decode to build one from a Record.
type Command interface {
	// Name is the lower-case command word.
	Name() string
	command()
}

// NavigateCommand moves the robot toward Target. Err is set when the
// coordinates could not be parsed; the controller reports it only after
// its busy guard has run.
type NavigateCommand struct {
	Target world.Waypoint
	Err    error
}

// PickCommand grasps the nearest object of Kind.
type PickCommand struct {
	Kind string
}

// SpeakCommand says Text.
type SpeakCommand struct {
	Text string
}

// TickCommand advances background work (recovery, docking, charging).
type TickCommand struct{}

// UnknownCommand carries an unrecognised command word.
type UnknownCommand struct {
	Type string
}

func (NavigateCommand) Name() string { return "navigate" }
func (PickCommand) Name() string     { return "pick" }
func (SpeakCommand) Name() string    { return "speak" }
func (TickCommand) Name() string     { return "tick" }
func (UnknownCommand) Name() string  { return "unknown" }

func (NavigateCommand) command() {}
func (PickCommand) command()     {}
func (SpeakCommand) command()    {}
func (TickCommand) command()     {}
func (UnknownCommand) command()  {}

// Decode turns a raw record into a typed command. The type word is
// matched case-insensitively.
func Decode(r Record) Command {
	switch strings.ToLower(strings.TrimSpace(r.Type)) {
	case "navigate":
		target, err := ParseWaypoint(r.Args)
		return NavigateCommand{Target: target, Err: err}
	case "pick":
		return PickCommand{Kind: strings.TrimSpace(r.Args)}
	case "speak":
		return SpeakCommand{Text: r.Args}
	case "tick":
		return TickCommand{}
	default:
		return UnknownCommand{Type: r.Type}
	}
}

// ParseWaypoint parses "x,y" into a waypoint. Whitespace around either
// number is ignored.
func ParseWaypoint(s string) (world.Waypoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return world.Waypoint{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return world.Waypoint{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return world.Waypoint{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}
	return world.Pt(x, y), nil
}
