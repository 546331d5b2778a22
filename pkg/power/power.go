// Package power models the robot battery and the rules that decide when
// autonomous docking must take over.
package power

import "fmt"

// Battery bounds.
const (
	Empty = 0
	Full  = 100
)

// Level is a battery charge percentage in [Empty, Full].
type Level int

// Clamp restricts l to [Empty, Full].
func (l Level) Clamp() Level {
	if l < Empty {
		return Empty
	}
	if l > Full {
		return Full
	}
	return l
}

// Drain returns the level after spending cost.
func (l Level) Drain(cost int) Level {
	return (l - Level(cost)).Clamp()
}

// Charge returns the level after adding step.
func (l Level) Charge(step int) Level {
	return (l + Level(step)).Clamp()
}

// IsFull reports whether l is at Full.
func (l Level) IsFull() bool {
	return l >= Full
}

// String renders the level as a percentage.
func (l Level) String() string {
	return fmt.Sprintf("%d%%", int(l))
}

// Costs are the fixed battery costs of foreground actions.
type Costs struct {
	Navigate int `yaml:"navigate" validate:"gte=0,lte=100"`
	Pick     int `yaml:"pick" validate:"gte=0,lte=100"`
	Speak    int `yaml:"speak" validate:"gte=0,lte=100"`
}

// DefaultCosts returns the standard action costs.
func DefaultCosts() Costs {
	return Costs{
		Navigate: 5,
		Pick:     5,
		Speak:    2,
	}
}

// Mode is the subset of robot status the policy needs.
type Mode struct {
	Docking  bool
	Charging bool
}

// Policy holds the thresholds for battery-driven decisions.
type Policy struct {
	// LowThreshold is the level below which foreground work is refused,
	// recovery from ERROR is blocked and docking is triggered.
	LowThreshold Level `yaml:"low_threshold" validate:"gte=0,lte=100"`

	// ChargeStep is the increment applied per tick while charging.
	ChargeStep int `yaml:"charge_step" validate:"gt=0,lte=100"`
}

// DefaultPolicy returns the standard thresholds: 10% low mark and a
// 10-point charge step.
func DefaultPolicy() Policy {
	return Policy{
		LowThreshold: 10,
		ChargeStep:   10,
	}
}

// IsLow reports whether level is under the low threshold.
func (p Policy) IsLow(level Level) bool {
	return level < p.LowThreshold
}

// CanOperate reports whether foreground work may start at level.
func (p Policy) CanOperate(level Level) bool {
	return !p.IsLow(level)
}

// CanRecover reports whether the robot may leave ERROR at level.
func (p Policy) CanRecover(level Level) bool {
	return !p.IsLow(level)
}

// ShouldDock reports whether autonomous docking must start. It never
// fires while a docking or charging cycle is already under way.
func (p Policy) ShouldDock(level Level, mode Mode) bool {
	if mode.Docking || mode.Charging {
		return false
	}
	return p.IsLow(level)
}

// NextCharge returns the level after one charging tick and whether the
// cycle is complete.
func (p Policy) NextCharge(level Level) (Level, bool) {
	if level.IsFull() {
		return Full, true
	}
	next := level.Charge(p.ChargeStep)
	return next, next.IsFull()
}
