package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/teslashibe/go-homebot/internal/config"
	"github.com/teslashibe/go-homebot/internal/log"
	"github.com/teslashibe/go-homebot/pkg/actuator"
	"github.com/teslashibe/go-homebot/pkg/console"
	"github.com/teslashibe/go-homebot/pkg/events"
	"github.com/teslashibe/go-homebot/pkg/robot"
	"github.com/teslashibe/go-homebot/pkg/telemetry"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		script  string
		powerOn bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive robot console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			in := cmd.InOrStdin()
			if script != "" {
				f, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			return runConsole(ctx, root.cfg, in, cmd.OutOrStdout(), powerOn)
		},
	}

	cmd.Flags().StringVarP(&script, "script", "s", "", "read commands from FILE instead of stdin")
	cmd.Flags().BoolVar(&powerOn, "power-on", false, "power the robot on before reading commands")
	return cmd
}

func runConsole(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, powerOn bool) error {
	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	bus := events.New(cfg.ID)
	defer metrics.Attach(bus)()
	defer bus.SubscribeAll(traceEvent, events.TopicState, events.TopicAction,
		events.TopicPlan, events.TopicFault, events.TopicDocking)()

	speaker := actuator.NewSpeaker(out)
	gripper := actuator.NewGripper()
	ctrl, err := newController(cfg, bus, speaker, gripper)
	if err != nil {
		return err
	}
	metrics.Battery.Set(float64(ctrl.Battery()))

	if powerOn {
		ctrl.PowerOn()
	}

	opts := []console.SessionOption{
		console.WithGatherer(reg),
		console.WithDisplay(speaker),
		console.WithReleaser(gripper),
	}
	if isTerminal(in) {
		opts = append(opts, console.Interactive(true))
	}
	if isTerminal(out) {
		opts = append(opts, console.WithStyles(console.DefaultStyles()))
	}

	log.Info("console started", "robot", cfg.ID, "planner", cfg.Planner)
	err = console.NewSession(ctrl, out, opts...).Run(ctx, in)
	log.Info("console stopped", "robot", cfg.ID, "ticks", ctrl.Status().Ticks,
		"faults", bus.Published(events.TopicFault))
	if err == context.Canceled {
		return nil
	}
	return err
}

// traceEvent mirrors controller events into the debug log.
func traceEvent(e events.Event) {
	log.Debug("event", "topic", e.Topic, "payload", e.Payload)
}

func newController(cfg config.Config, bus *events.Bus, speaker *actuator.Speaker, gripper *actuator.Gripper) (*robot.Controller, error) {
	p, err := cfg.NewPlanner()
	if err != nil {
		return nil, err
	}
	return robot.NewController(cfg.ID, cfg.Environment(),
		robot.WithPlanner(p),
		robot.WithPolicy(cfg.Policy()),
		robot.WithCosts(cfg.Costs()),
		robot.WithBattery(cfg.Battery.Initial),
		robot.WithOrigin(cfg.Origin),
		robot.WithCharger(cfg.Charger),
		robot.WithCommunicator(speaker),
		robot.WithManipulator(gripper),
		robot.WithEventBus(bus),
	), nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
