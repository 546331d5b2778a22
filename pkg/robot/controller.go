package robot

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/teslashibe/go-homebot/internal/log"
	"github.com/teslashibe/go-homebot/pkg/actuator"
	"github.com/teslashibe/go-homebot/pkg/events"
	"github.com/teslashibe/go-homebot/pkg/memory"
	"github.com/teslashibe/go-homebot/pkg/navigation"
	"github.com/teslashibe/go-homebot/pkg/planner"
	"github.com/teslashibe/go-homebot/pkg/power"
	"github.com/teslashibe/go-homebot/pkg/world"
)

// DefaultCharger is the charging dock position.
var DefaultCharger = world.Pt(0, -1)

// Controller is the robot's state machine. It processes one command per
// Tick, delegates routes to its Navigator and runs autonomous docking and
// charging between foreground commands.
//
// Controller is not safe for concurrent use; callers serialise Tick,
// PowerOn and PowerOff.
type Controller struct {
	id       string
	state    State
	battery  power.Level
	docking  bool // navigating to the charger
	charging bool // a dock/charge cycle is under way

	origin  world.Waypoint
	charger world.Waypoint

	env   Environment
	nav   *navigation.Navigator
	manip Manipulator
	comms Communicator
	mem   *memory.Memory

	policy power.Policy
	costs  power.Costs

	bus    *events.Bus
	logger *slog.Logger

	ticks uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithNavigator sets the navigator (and thus the planning strategy).
func WithNavigator(n *navigation.Navigator) Option {
	return func(c *Controller) { c.nav = n }
}

// WithPlanner is shorthand for WithNavigator(navigation.New(p)).
func WithPlanner(p planner.Planner) Option {
	return func(c *Controller) { c.nav = navigation.New(p) }
}

// WithManipulator sets the manipulator.
func WithManipulator(m Manipulator) Option {
	return func(c *Controller) { c.manip = m }
}

// WithCommunicator sets the communicator.
func WithCommunicator(cm Communicator) Option {
	return func(c *Controller) { c.comms = cm }
}

// WithMemory sets the action log.
func WithMemory(m *memory.Memory) Option {
	return func(c *Controller) { c.mem = m }
}

// WithPolicy sets the battery thresholds.
func WithPolicy(p power.Policy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithCosts sets the per-action battery costs.
func WithCosts(costs power.Costs) Option {
	return func(c *Controller) { c.costs = costs }
}

// WithBattery sets the initial battery level.
func WithBattery(level power.Level) Option {
	return func(c *Controller) { c.battery = level.Clamp() }
}

// WithOrigin sets the reference position routes are planned from.
func WithOrigin(p world.Waypoint) Option {
	return func(c *Controller) { c.origin = p }
}

// WithCharger sets the charging dock position.
func WithCharger(p world.Waypoint) Option {
	return func(c *Controller) { c.charger = p }
}

// WithEventBus publishes controller events to bus.
func WithEventBus(bus *events.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a powered-off controller with a full battery.
// A nil env gets a default world.Environment.
func NewController(id string, env Environment, opts ...Option) *Controller {
	if env == nil {
		env = world.NewEnvironment()
	}
	c := &Controller{
		id:      id,
		state:   StateOff,
		battery: power.Full,
		origin:  world.Origin,
		charger: DefaultCharger,
		env:     env,
		policy:  power.DefaultPolicy(),
		costs:   power.DefaultCosts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.nav == nil {
		c.nav = navigation.New(nil)
	}
	if c.manip == nil {
		c.manip = actuator.NewGripper()
	}
	if c.comms == nil {
		c.comms = actuator.NewSpeaker(nil)
	}
	if c.mem == nil {
		c.mem = memory.New()
	}
	if c.logger == nil {
		c.logger = log.Component("controller")
	}
	c.logger = c.logger.With("robot", id)
	return c
}

// ID returns the robot identifier.
func (c *Controller) ID() string { return c.id }

// State returns the current operating mode.
func (c *Controller) State() State { return c.state }

// Battery returns the current battery level.
func (c *Controller) Battery() power.Level { return c.battery }

// Docking reports whether the robot is driving to its charger.
func (c *Controller) Docking() bool { return c.docking }

// Charging reports whether a dock/charge cycle is under way.
func (c *Controller) Charging() bool { return c.charging }

// Memory returns the action log.
func (c *Controller) Memory() *memory.Memory { return c.mem }

// Navigator returns the navigator.
func (c *Controller) Navigator() *navigation.Navigator { return c.nav }

// Status is a point-in-time summary of the controller.
type Status struct {
	ID        string
	State     State
	Battery   power.Level
	Docking   bool
	Charging  bool
	Remaining int
	Ticks     uint64
}

// Status returns a snapshot of the controller.
func (c *Controller) Status() Status {
	return Status{
		ID:        c.id,
		State:     c.state,
		Battery:   c.battery,
		Docking:   c.docking,
		Charging:  c.charging,
		Remaining: c.nav.Remaining(),
		Ticks:     c.ticks,
	}
}

// PowerOn moves the robot from OFF to IDLE. It reports false when the
// robot was already on.
func (c *Controller) PowerOn() bool {
	if c.state != StateOff {
		return false
	}
	c.setState(StateIdle)
	return true
}

// PowerOff stops the robot from any state, aborting docking and charging.
// It reports false when the robot was already off.
func (c *Controller) PowerOff() bool {
	if c.state == StateOff {
		return false
	}
	c.docking = false
	c.charging = false
	c.nav.Reset()
	c.setState(StateOff)
	return true
}

// TickRecord decodes r and processes it.
func (c *Controller) TickRecord(r Record) string {
	return c.Tick(Decode(r))
}

// Tick processes one command and returns a human-readable status line.
// It never panics because of a collaborator.
func (c *Controller) Tick(cmd Command) string {
	if cmd == nil {
		cmd = UnknownCommand{}
	}
	status := c.process(cmd)
	c.ticks++
	c.bus.Publish(events.TopicTick, events.Tick{
		RobotID: c.id,
		Command: cmd.Name(),
		State:   c.state.String(),
		Status:  status,
	})
	return status
}

func (c *Controller) process(cmd Command) string {
	if c.state == StateOff {
		return MsgOff
	}

	if _, isTick := cmd.(TickCommand); !isTick {
		if c.state == StateCharging {
			return MsgCharging
		}
		if c.docking {
			return MsgDockingInProgress
		}
	}

	switch cmd := cmd.(type) {
	case TickCommand:
		return c.background()
	case NavigateCommand:
		return c.navigate(cmd)
	case PickCommand:
		return c.pick(cmd)
	case SpeakCommand:
		return c.speak(cmd)
	case UnknownCommand:
		c.setState(StateIdle)
		return MsgInvalidCommand
	default:
		c.setState(StateIdle)
		return MsgInvalidCommand
	}
}

// background advances recovery, docking and charging, in that order.
func (c *Controller) background() string {
	switch {
	case c.state == StateError:
		if !c.policy.CanRecover(c.battery) {
			return MsgCannotRecover
		}
		c.setState(StateIdle)
		return MsgRecovered

	case c.docking:
		step, ok := c.nav.Next()
		if ok {
			return fmt.Sprintf("Auto-docking step %v", step)
		}
		c.docking = false
		c.setState(StateCharging)
		c.bus.Publish(events.TopicDocking, events.Docking{RobotID: c.id, Battery: int(c.battery)})
		return MsgDocked

	case c.state == StateCharging:
		next, done := c.policy.NextCharge(c.battery)
		c.battery = next
		c.bus.Publish(events.TopicCharge, events.Charge{RobotID: c.id, Battery: int(next), Complete: done})
		if done {
			c.charging = false
			c.setState(StateIdle)
			return MsgChargeComplete
		}
		return fmt.Sprintf("Charging... %d%%", int(next))

	default:
		return MsgTickExecuted
	}
}

func (c *Controller) navigate(cmd NavigateCommand) string {
	if c.state != StateIdle {
		c.setState(StateIdle)
		return busyMessage("navigate")
	}
	c.setState(StateMoving)

	if cmd.Err != nil {
		c.setState(StateIdle)
		return MsgInvalidCoordinates
	}
	if !c.policy.CanOperate(c.battery) {
		c.setState(StateIdle)
		return MsgLowBattery
	}
	if msg, ok := c.planRoute("navigate", cmd.Target, MsgPlanningError); !ok {
		return msg
	}

	step, ok := c.nav.Next()
	c.mem.Push(ActionNavigate)
	c.spend(ActionNavigate, c.costs.Navigate)
	c.setState(StateIdle)

	msg := MsgNoPath
	if ok {
		msg = fmt.Sprintf("Navigating to %v", step)
	}
	return c.withAutoDock(msg)
}

func (c *Controller) pick(cmd PickCommand) string {
	if c.state != StateIdle {
		c.setState(StateIdle)
		return busyMessage("pick")
	}
	c.setState(StateManipulating)

	if !c.policy.CanOperate(c.battery) {
		c.setState(StateIdle)
		return MsgLowBattery
	}

	var (
		obj   world.Object
		found bool
	)
	err := guard(func() error {
		c.env.Sense()
		obj, found = c.env.FindNearest(cmd.Kind)
		return nil
	})
	if err != nil {
		c.fail("pick", err)
		return MsgManipulatorError
	}
	if !found {
		c.setState(StateIdle)
		return MsgObjectNotFound
	}

	if msg, ok := c.planRoute("pick", obj.Position, MsgManipulatorError); !ok {
		return msg
	}

	err = guard(func() error { return c.manip.Pick(obj.ID) })
	switch {
	case errors.Is(err, actuator.ErrGraspFailed):
		c.fail("pick", err)
		return MsgGraspFailed
	case err != nil:
		c.fail("pick", err)
		return MsgManipulatorError
	}

	c.mem.Push(ActionPick)
	c.mem.Remember(fmt.Sprintf("picked %s %s at %s", obj.Kind, obj.ID, obj.Position))
	c.setState(StateIdle)
	c.spend(ActionPick, c.costs.Pick)
	return c.withAutoDock(MsgPicked)
}

func (c *Controller) speak(cmd SpeakCommand) string {
	if c.state != StateIdle {
		c.setState(StateIdle)
		return busyMessage("speak")
	}
	c.setState(StateCommunicating)

	if err := guard(func() error { return c.comms.Speak(cmd.Text) }); err != nil {
		c.fail("speak", err)
		return MsgCommunicatorError
	}

	c.mem.Push(ActionSpeak)
	c.setState(StateIdle)
	c.spend(ActionSpeak, c.costs.Speak)
	return c.withAutoDock(MsgSpoken)
}

// planRoute plans from the origin to target. On failure it moves to ERROR
// and returns the status line to report; panicMsg is used when the
// planner itself panicked.
func (c *Controller) planRoute(op string, target world.Waypoint, panicMsg string) (string, bool) {
	err := guard(func() error { return c.nav.Plan(c.origin, target, c.env) })
	c.publishPlan(err)

	switch {
	case errors.Is(err, ErrCollaboratorPanic):
		c.fail(op, err)
		return panicMsg, false
	case err != nil:
		c.fail(op, err)
		return MsgNoPathToTarget, false
	case c.nav.TimedOut():
		c.fail(op, fmt.Errorf("plan %v -> %v: %w", c.origin, target, planner.ErrIterationCap))
		return MsgNoPathToTarget, false
	}
	return "", true
}

// withAutoDock starts docking when the post-action battery level is low
// and appends the AUTO suffix to msg.
func (c *Controller) withAutoDock(msg string) string {
	mode := power.Mode{Docking: c.docking, Charging: c.charging}
	if !c.policy.ShouldDock(c.battery, mode) {
		return msg
	}

	err := guard(func() error { return c.nav.Plan(c.origin, c.charger, c.env) })
	c.publishPlan(err)
	if err != nil {
		// Docking still proceeds; an empty route docks on the next tick.
		c.logger.Warn("no route to charger", "charger", c.charger.String(), "error", err)
	}

	c.docking = true
	c.charging = true
	c.setState(StateMoving)
	c.bus.Publish(events.TopicDocking, events.Docking{RobotID: c.id, Started: true, Battery: int(c.battery)})
	c.logger.Info("auto-docking", "battery", int(c.battery), "steps", c.nav.Remaining())
	return msg + " | " + MsgAutoDock
}

func (c *Controller) spend(action string, cost int) {
	c.battery = c.battery.Drain(cost)
	c.bus.Publish(events.TopicAction, events.Action{
		RobotID: c.id,
		Name:    action,
		Cost:    cost,
		Battery: int(c.battery),
	})
}

// fail moves to ERROR and reports err on the diagnostic channels.
func (c *Controller) fail(op string, err error) {
	c.setState(StateError)
	c.logger.Error("command failed", "op", op, "error", err)
	c.bus.Publish(events.TopicFault, events.Fault{RobotID: c.id, Op: op, Err: err})
}

func (c *Controller) publishPlan(err error) {
	c.bus.Publish(events.TopicPlan, events.Plan{
		RobotID:    c.id,
		Planner:    c.nav.Planner().Name(),
		Iterations: c.nav.Iterations(),
		Steps:      c.nav.Remaining(),
		Err:        err,
	})
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	from := c.state
	c.state = s
	c.logger.Debug("state change", "from", from.String(), "to", s.String())
	c.bus.Publish(events.TopicState, events.StateChange{RobotID: c.id, From: from.String(), To: s.String()})
}
