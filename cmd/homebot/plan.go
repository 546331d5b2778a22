package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-homebot/pkg/navigation"
	"github.com/teslashibe/go-homebot/pkg/planner"
	"github.com/teslashibe/go-homebot/pkg/robot"
	"github.com/teslashibe/go-homebot/pkg/world"
)

func newPlanCmd(root *rootOptions) *cobra.Command {
	var (
		from, to string
		kind     string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a route in the configured world and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := robot.ParseWaypoint(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			goal, err := robot.ParseWaypoint(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			if kind == "" {
				kind = root.cfg.Planner
			}
			p, err := planner.New(kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			nav := navigation.New(p)
			steps := 0
			err = nav.Follow(start, goal, root.cfg.Environment(), func(w world.Waypoint) error {
				steps++
				_, err := fmt.Fprintf(out, "%3d  %v\n", steps, w)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %v -> %v in %d steps (%d iterations)\n",
				p.Name(), start, goal, steps, nav.Iterations())
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "0,0", "start waypoint as x,y")
	cmd.Flags().StringVar(&to, "to", "", "goal waypoint as x,y")
	cmd.Flags().StringVar(&kind, "planner", "", "planner kind (default from config)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
