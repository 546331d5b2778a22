// Package console implements the interactive front end: a line tokenizer,
// a FIFO command queue and a read-eval loop that drives a Controller.
package console

import (
	"strings"

	"github.com/teslashibe/go-homebot/pkg/robot"
)

// Kind classifies an input line.
type Kind int

const (
	KindEmpty Kind = iota
	KindCommand
	KindPowerOn
	KindPowerOff
	KindExit
	KindHistory
	KindMetrics
	KindStatus
	KindFacts
	KindMemory
	KindDisplay
	KindDrop
)

var kindNames = [...]string{
	KindEmpty:    "empty",
	KindCommand:  "command",
	KindPowerOn:  "power on",
	KindPowerOff: "power off",
	KindExit:     "exit",
	KindHistory:  "history",
	KindMetrics:  "metrics",
	KindStatus:   "status",
	KindFacts:    "facts",
	KindMemory:   "memory",
	KindDisplay:  "display",
	KindDrop:     "drop",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Line is one tokenized input line. Record is set only for KindCommand
// and Text only for KindDisplay.
type Line struct {
	Kind   Kind
	Record robot.Record
	Text   string
}

var directives = map[string]Kind{
	"power on":  KindPowerOn,
	"power off": KindPowerOff,
	"exit":      KindExit,
	"quit":      KindExit,
	"history":   KindHistory,
	"metrics":   KindMetrics,
	"status":    KindStatus,
	"facts":     KindFacts,
	"memory":    KindMemory,
	"drop":      KindDrop,
}

// ParseLine tokenizes s. Console directives are matched case-insensitively
// with runs of whitespace collapsed. "display" keeps the rest of the line
// verbatim; anything else is split at the first space into a command type
// and its arguments.
func ParseLine(s string) Line {
	s = strings.TrimSpace(s)
	if s == "" {
		return Line{Kind: KindEmpty}
	}
	if k, ok := directives[strings.ToLower(strings.Join(strings.Fields(s), " "))]; ok {
		return Line{Kind: k}
	}

	typ, args, _ := strings.Cut(s, " ")
	if strings.EqualFold(typ, "display") {
		return Line{Kind: KindDisplay, Text: strings.TrimSpace(args)}
	}
	return Line{
		Kind:   KindCommand,
		Record: robot.Record{Type: typ, Args: strings.TrimSpace(args)},
	}
}
