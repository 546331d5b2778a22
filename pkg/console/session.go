package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/teslashibe/go-homebot/internal/log"
	"github.com/teslashibe/go-homebot/pkg/actuator"
	"github.com/teslashibe/go-homebot/pkg/robot"
	"github.com/teslashibe/go-homebot/pkg/telemetry"
)

// Banner is printed when the session is interactive.
const Banner = "Home robot console: type commands (e.g. 'navigate 5,5', " +
	"'pick bottle', 'speak hello', 'display hi', 'drop', 'power on/off', " +
	"'tick', 'status', 'facts', 'exit')"

const prompt = "> "

// Colors
var (
	ColorOK    = lipgloss.Color("#2CD7C7")
	ColorWarn  = lipgloss.Color("#F4D03F")
	ColorError = lipgloss.Color("#E74C3C")
	ColorMuted = lipgloss.Color("#2C4A54")
)

// Styles renders console output.
type Styles struct {
	Prompt lipgloss.Style
	OK     lipgloss.Style
	Warn   lipgloss.Style
	Error  lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns the coloured terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Prompt: lipgloss.NewStyle().Bold(true).Foreground(ColorOK),
		OK:     lipgloss.NewStyle().Foreground(ColorOK),
		Warn:   lipgloss.NewStyle().Foreground(ColorWarn),
		Error:  lipgloss.NewStyle().Foreground(ColorError),
		Muted:  lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Prompt: plain, OK: plain, Warn: plain, Error: plain, Muted: plain}
}

// status picks the style for a controller status line.
func (s Styles) status(line string) string {
	switch {
	case strings.HasPrefix(line, "ERROR"):
		return s.Error.Render(line)
	case strings.Contains(line, "AUTO:"):
		return s.Warn.Render(line)
	default:
		return s.OK.Render(line)
	}
}

// Display shows text on the robot's screen.
type Display interface {
	Display(text string) error
}

// Releaser lets go of the most recently grasped object.
type Releaser interface {
	UndoLastGrasp() error
}

// Session reads console lines and drives a Controller.
type Session struct {
	ctrl        *robot.Controller
	queue       *Queue
	out         io.Writer
	gatherer    prometheus.Gatherer
	display     Display
	releaser    Releaser
	styles      Styles
	interactive bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithGatherer enables the metrics directive.
func WithGatherer(g prometheus.Gatherer) SessionOption {
	return func(s *Session) { s.gatherer = g }
}

// WithDisplay enables the display directive.
func WithDisplay(d Display) SessionOption {
	return func(s *Session) { s.display = d }
}

// WithReleaser enables the drop directive. r should be the controller's
// manipulator.
func WithReleaser(r Releaser) SessionOption {
	return func(s *Session) { s.releaser = r }
}

// WithStyles overrides the output styles.
func WithStyles(st Styles) SessionOption {
	return func(s *Session) { s.styles = st }
}

// Interactive makes the session print a banner and prompts.
func Interactive(on bool) SessionOption {
	return func(s *Session) { s.interactive = on }
}

// NewSession creates a session writing to out.
func NewSession(ctrl *robot.Controller, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		ctrl:   ctrl,
		queue:  NewQueue(),
		out:    out,
		styles: PlainStyles(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Queue returns the pending command queue.
func (s *Session) Queue() *Queue { return s.queue }

// Run processes lines from in until exit, EOF or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if s.interactive {
		fmt.Fprintln(s.out, s.styles.Muted.Render(Banner))
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.interactive {
			fmt.Fprint(s.out, s.styles.Prompt.Render(prompt))
		}
		if !scanner.Scan() {
			break
		}
		if !s.Handle(scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read console input: %w", err)
	}
	return nil
}

// Handle processes one input line. It returns false when the session
// should end.
func (s *Session) Handle(text string) bool {
	line := ParseLine(text)
	switch line.Kind {
	case KindEmpty:
	case KindExit:
		return false
	case KindPowerOn:
		fmt.Fprintf(s.out, "Power on: %t\n", s.ctrl.PowerOn())
	case KindPowerOff:
		fmt.Fprintf(s.out, "Power off: %t\n", s.ctrl.PowerOff())
	case KindHistory:
		s.history()
	case KindMetrics:
		s.metrics()
	case KindStatus:
		fmt.Fprintln(s.out, FormatStatus(s.ctrl.Status()))
	case KindFacts:
		s.facts()
	case KindMemory:
		s.dump()
	case KindDisplay:
		s.show(line.Text)
	case KindDrop:
		s.drop()
	case KindCommand:
		s.queue.Enqueue(line.Record)
		s.drain()
	}
	return true
}

func (s *Session) drain() {
	for {
		r, ok := s.queue.Dequeue()
		if !ok {
			return
		}
		fmt.Fprintln(s.out, s.styles.status(s.ctrl.TickRecord(r)))
	}
}

func (s *Session) history() {
	actions := s.ctrl.Memory().Actions()
	if len(actions) == 0 {
		fmt.Fprintln(s.out, s.styles.Muted.Render("History: (empty)"))
		return
	}
	fmt.Fprintf(s.out, "History: %s\n", strings.Join(actions, ", "))
}

func (s *Session) facts() {
	mem := s.ctrl.Memory()
	stats := mem.Stats()
	fmt.Fprintf(s.out, "Facts: %d (actions logged: %d)\n", stats["facts"], stats["breadcrumbs"])
	for _, f := range mem.KnownFacts() {
		fmt.Fprintf(s.out, "  - %s\n", f)
	}
}

func (s *Session) dump() {
	data, err := s.ctrl.Memory().ToJSON()
	if err != nil {
		log.Warn("encode memory", "error", err)
		fmt.Fprintln(s.out, s.styles.Error.Render("ERROR: memory unavailable"))
		return
	}
	fmt.Fprintln(s.out, string(data))
}

func (s *Session) show(text string) {
	switch {
	case s.display == nil:
		fmt.Fprintln(s.out, s.styles.Muted.Render("Display disabled"))
	case text == "":
		fmt.Fprintln(s.out, s.styles.Error.Render("ERROR: Nothing to display"))
	default:
		if err := s.display.Display(text); err != nil {
			log.Warn("display", "error", err)
			fmt.Fprintln(s.out, s.styles.Error.Render("ERROR: Display failed"))
		}
	}
}

func (s *Session) drop() {
	if s.releaser == nil {
		fmt.Fprintln(s.out, s.styles.Muted.Render("Drop disabled"))
		return
	}
	err := s.releaser.UndoLastGrasp()
	switch {
	case errors.Is(err, actuator.ErrNothingToUndo):
		fmt.Fprintln(s.out, s.styles.Warn.Render("Nothing to drop"))
		return
	case err != nil:
		log.Warn("drop", "error", err)
		fmt.Fprintln(s.out, s.styles.Error.Render("ERROR: Drop failed"))
		return
	}
	fmt.Fprintln(s.out, s.styles.OK.Render("Dropped last object"))
}

func (s *Session) metrics() {
	if s.gatherer == nil {
		fmt.Fprintln(s.out, s.styles.Muted.Render("Metrics disabled"))
		return
	}
	if err := telemetry.WriteText(s.out, s.gatherer); err != nil {
		log.Warn("render metrics", "error", err)
		fmt.Fprintln(s.out, s.styles.Error.Render("ERROR: metrics unavailable"))
	}
}

// FormatStatus renders a one-line controller summary.
func FormatStatus(st robot.Status) string {
	return fmt.Sprintf("%s %s battery=%s docking=%t charging=%t route=%d ticks=%d",
		st.ID, st.State, st.Battery, st.Docking, st.Charging, st.Remaining, st.Ticks)
}
