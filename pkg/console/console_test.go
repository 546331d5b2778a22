package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-homebot/internal/log"
	"github.com/teslashibe/go-homebot/pkg/actuator"
	"github.com/teslashibe/go-homebot/pkg/events"
	"github.com/teslashibe/go-homebot/pkg/robot"
	"github.com/teslashibe/go-homebot/pkg/telemetry"
	"github.com/teslashibe/go-homebot/pkg/world"
)

type silentSpeaker struct{}

func (silentSpeaker) Speak(string) error { return nil }

func TestParseLine(t *testing.T) {
	tests := []struct {
		in   string
		want Line
	}{
		{"", Line{Kind: KindEmpty}},
		{"   ", Line{Kind: KindEmpty}},
		{"power on", Line{Kind: KindPowerOn}},
		{"  POWER   Off ", Line{Kind: KindPowerOff}},
		{"exit", Line{Kind: KindExit}},
		{"Quit", Line{Kind: KindExit}},
		{"history", Line{Kind: KindHistory}},
		{"metrics", Line{Kind: KindMetrics}},
		{"status", Line{Kind: KindStatus}},
		{"Facts", Line{Kind: KindFacts}},
		{"memory", Line{Kind: KindMemory}},
		{"drop", Line{Kind: KindDrop}},
		{"display  Hello  World ", Line{Kind: KindDisplay, Text: "Hello  World"}},
		{"DISPLAY", Line{Kind: KindDisplay}},
		{"navigate 5,5", Line{Kind: KindCommand, Record: robot.Record{Type: "navigate", Args: "5,5"}}},
		{"speak hello  world ", Line{Kind: KindCommand, Record: robot.Record{Type: "speak", Args: "hello  world"}}},
		{"tick", Line{Kind: KindCommand, Record: robot.Record{Type: "tick"}}},
		{"power", Line{Kind: KindCommand, Record: robot.Record{Type: "power"}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.in))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "power off", KindPowerOff.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	_, ok := q.Dequeue()
	assert.False(t, ok)

	q.Enqueue(robot.Record{Type: "tick"})
	q.Enqueue(robot.Record{Type: "speak", Args: "hi"})
	assert.Equal(t, 2, q.Len())

	r, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "tick", r.Type)
	r, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "speak", r.Type)
	assert.Zero(t, q.Len())
}

func newTestSession(t *testing.T, opts ...SessionOption) (*Session, *bytes.Buffer) {
	t.Helper()
	ctrl := robot.NewController("R1", nil,
		robot.WithLogger(log.Discard()),
		robot.WithCommunicator(silentSpeaker{}),
	)
	var out bytes.Buffer
	return NewSession(ctrl, &out, opts...), &out
}

func TestSession_Script(t *testing.T) {
	s, out := newTestSession(t)
	script := strings.Join([]string{
		"navigate 1,1",
		"power on",
		"power on",
		"",
		"navigate 1,1",
		"speak hello",
		"history",
		"status",
		"exit",
		"speak never",
	}, "\n")

	require.NoError(t, s.Run(context.Background(), strings.NewReader(script)))

	want := strings.Join([]string{
		robot.MsgOff,
		"Power on: true",
		"Power on: false",
		"Navigating to (0, 1)",
		robot.MsgSpoken,
		"History: NAVIGATE, SPEAK",
		"R1 IDLE battery=93% docking=false charging=false route=1 ticks=3",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
	assert.Zero(t, s.Queue().Len())
}

func TestSession_FactsDisplayDrop(t *testing.T) {
	env := world.NewEnvironment()
	cup := env.AddObject("cup", world.Pt(1, 0))
	grip := actuator.NewGripper()
	ctrl := robot.NewController("R1", env,
		robot.WithLogger(log.Discard()),
		robot.WithCommunicator(silentSpeaker{}),
		robot.WithManipulator(grip),
	)
	var out bytes.Buffer
	s := NewSession(ctrl, &out, WithDisplay(actuator.NewSpeaker(&out)), WithReleaser(grip))

	script := "power on\npick cup\nfacts\ndrop\ndrop\ndisplay hello there\ndisplay\n"
	require.NoError(t, s.Run(context.Background(), strings.NewReader(script)))

	want := strings.Join([]string{
		"Power on: true",
		robot.MsgPicked,
		"Facts: 1 (actions logged: 1)",
		"  - picked cup " + cup.ID + " at (1, 0)",
		"Dropped last object",
		"Nothing to drop",
		"Displaying hello there",
		"ERROR: Nothing to display",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
	assert.Empty(t, grip.History())
}

func TestSession_DisplayAndDropDisabled(t *testing.T) {
	s, out := newTestSession(t)
	require.NoError(t, s.Run(context.Background(), strings.NewReader("facts\ndrop\ndisplay hi\n")))
	assert.Equal(t, "Facts: 0 (actions logged: 0)\nDrop disabled\nDisplay disabled\n", out.String())
}

func TestSession_MemoryDump(t *testing.T) {
	s, out := newTestSession(t)
	require.NoError(t, s.Run(context.Background(), strings.NewReader("power on\nspeak hi\nmemory\n")))
	assert.Contains(t, out.String(), `"action": "SPEAK"`)
	assert.Contains(t, out.String(), `"facts": []`)
}

func TestSession_EOFEndsCleanly(t *testing.T) {
	s, out := newTestSession(t)
	require.NoError(t, s.Run(context.Background(), strings.NewReader("power on\npower off\nhistory")))
	assert.Equal(t, "Power on: true\nPower off: true\nHistory: (empty)\n", out.String())
}

func TestSession_Interactive(t *testing.T) {
	s, out := newTestSession(t, Interactive(true))
	require.NoError(t, s.Run(context.Background(), strings.NewReader("exit\n")))
	assert.Equal(t, Banner+"\n"+prompt, out.String())
}

func TestSession_ContextCancelled(t *testing.T) {
	s, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx, strings.NewReader("power on\n")), context.Canceled)
}

func TestSession_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(reg)
	bus := events.New("console")
	m.Attach(bus)

	ctrl := robot.NewController("R1", nil,
		robot.WithLogger(log.Discard()),
		robot.WithCommunicator(silentSpeaker{}),
		robot.WithEventBus(bus),
	)
	var out bytes.Buffer
	s := NewSession(ctrl, &out, WithGatherer(reg))

	s.Handle("power on")
	s.Handle("speak hi")
	s.Handle("metrics")

	assert.Contains(t, out.String(), `homebot_ticks_total{command="speak"} 1`)
	assert.Contains(t, out.String(), "homebot_battery_level 98")
}

func TestSession_MetricsDisabled(t *testing.T) {
	s, out := newTestSession(t)
	assert.True(t, s.Handle("metrics"))
	assert.Equal(t, "Metrics disabled\n", out.String())
}

func TestFormatStatus(t *testing.T) {
	got := FormatStatus(robot.Status{ID: "R2", State: robot.StateCharging, Battery: 40, Charging: true, Ticks: 7})
	assert.Equal(t, "R2 CHARGING battery=40% docking=false charging=true route=0 ticks=7", got)
}
