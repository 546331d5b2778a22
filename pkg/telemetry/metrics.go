// Package telemetry turns controller events into Prometheus metrics.
//
// Metrics are registered on a caller-supplied registry so tests and the
// console can each own an isolated one. Attach subscribes the metrics to
// an events.Bus; nothing else in the robot talks to Prometheus directly.
package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/teslashibe/go-homebot/pkg/events"
	"github.com/teslashibe/go-homebot/pkg/planner"
	"github.com/teslashibe/go-homebot/pkg/robot"
)

const namespace = "homebot"

// Metrics holds the controller's Prometheus collectors.
type Metrics struct {
	// TicksTotal counts processed commands.
	// Labels: command (navigate, pick, speak, tick, unknown)
	TicksTotal *prometheus.CounterVec

	// TransitionsTotal counts state changes.
	// Labels: from, to
	TransitionsTotal *prometheus.CounterVec

	// ActionsTotal counts successful foreground actions.
	// Labels: action
	ActionsTotal *prometheus.CounterVec

	// FaultsTotal counts failed commands.
	// Labels: op, reason (no_route, panic, other)
	FaultsTotal *prometheus.CounterVec

	// DockingsTotal counts docking cycles started.
	DockingsTotal prometheus.Counter

	// Battery is the last reported battery level.
	Battery prometheus.Gauge

	// PlanIterations observes search iterations per planning attempt.
	// Labels: planner
	PlanIterations *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TicksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Commands processed by the controller",
		}, []string{"command"}),
		TransitionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "State machine transitions",
		}, []string{"from", "to"}),
		ActionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Successful foreground actions",
		}, []string{"action"}),
		FaultsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faults_total",
			Help:      "Commands that moved the robot to ERROR",
		}, []string{"op", "reason"}),
		DockingsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dockings_total",
			Help:      "Autonomous docking cycles started",
		}),
		Battery: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "battery_level",
			Help:      "Battery level in percent",
		}),
		PlanIterations: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_iterations",
			Help:      "Search iterations per planning attempt",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, planner.MaxIterations},
		}, []string{"planner"}),
	}
}

// Attach subscribes m to bus. The returned function detaches it.
func (m *Metrics) Attach(bus *events.Bus) (detach func()) {
	unsubs := []func(){
		bus.Subscribe(events.TopicTick, m.onTick),
		bus.Subscribe(events.TopicState, m.onState),
		bus.Subscribe(events.TopicAction, m.onAction),
		bus.Subscribe(events.TopicFault, m.onFault),
		bus.Subscribe(events.TopicDocking, m.onDocking),
		bus.Subscribe(events.TopicCharge, m.onCharge),
		bus.Subscribe(events.TopicPlan, m.onPlan),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (m *Metrics) onTick(e events.Event) {
	if t, ok := e.Payload.(events.Tick); ok {
		m.TicksTotal.WithLabelValues(t.Command).Inc()
	}
}

func (m *Metrics) onState(e events.Event) {
	if sc, ok := e.Payload.(events.StateChange); ok {
		m.TransitionsTotal.WithLabelValues(sc.From, sc.To).Inc()
	}
}

func (m *Metrics) onAction(e events.Event) {
	if a, ok := e.Payload.(events.Action); ok {
		m.ActionsTotal.WithLabelValues(a.Name).Inc()
		m.Battery.Set(float64(a.Battery))
	}
}

func (m *Metrics) onFault(e events.Event) {
	if f, ok := e.Payload.(events.Fault); ok {
		m.FaultsTotal.WithLabelValues(f.Op, Reason(f.Err)).Inc()
	}
}

func (m *Metrics) onDocking(e events.Event) {
	d, ok := e.Payload.(events.Docking)
	if !ok {
		return
	}
	if d.Started {
		m.DockingsTotal.Inc()
	}
	m.Battery.Set(float64(d.Battery))
}

func (m *Metrics) onCharge(e events.Event) {
	if c, ok := e.Payload.(events.Charge); ok {
		m.Battery.Set(float64(c.Battery))
	}
}

func (m *Metrics) onPlan(e events.Event) {
	if p, ok := e.Payload.(events.Plan); ok && p.Planner != "" {
		m.PlanIterations.WithLabelValues(p.Planner).Observe(float64(p.Iterations))
	}
}

// Reason classifies a fault error into a low-cardinality label.
func Reason(err error) string {
	switch {
	case errors.Is(err, robot.ErrCollaboratorPanic):
		return "panic"
	case planner.IsNoRoute(err):
		return "no_route"
	default:
		return "other"
	}
}
