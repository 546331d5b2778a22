package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-homebot/pkg/planner"
	"github.com/teslashibe/go-homebot/pkg/world"
)

type benchOptions struct {
	size    int
	density float64
	trials  int
	seed    uint64
}

type benchResult struct {
	planner    string
	solved     int
	trials     int
	iterations int
	elapsed    time.Duration
}

func (r benchResult) avgTime() time.Duration {
	if r.trials == 0 {
		return 0
	}
	return r.elapsed / time.Duration(r.trials)
}

func (r benchResult) avgIterations() float64 {
	if r.trials == 0 {
		return 0
	}
	return float64(r.iterations) / float64(r.trials)
}

func newBenchCmd(root *rootOptions) *cobra.Command {
	opts := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare planners on random obstacle grids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.size < 2 {
				return fmt.Errorf("--size must be at least 2, got %d", opts.size)
			}
			if opts.density < 0 || opts.density >= 1 {
				return fmt.Errorf("--density must be in [0, 1), got %g", opts.density)
			}
			results, err := runBench(opts, planner.Kinds())
			if err != nil {
				return err
			}
			printBench(cmd.OutOrStdout(), opts, results)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.size, "size", 20, "grid side length")
	cmd.Flags().Float64Var(&opts.density, "density", 0.2, "obstacle probability per cell")
	cmd.Flags().IntVar(&opts.trials, "trials", 50, "grids per planner")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "random seed")
	return cmd
}

// randomGrid scatters obstacles over a size×size square, keeping the
// corners free.
func randomGrid(rng *rand.Rand, size int, density float64) *world.Environment {
	env := world.NewEmptyEnvironment()
	start, goal := world.Origin, world.Pt(size-1, size-1)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			p := world.Pt(x, y)
			if p == start || p == goal {
				continue
			}
			if rng.Float64() < density {
				env.AddObstacle(p)
			}
		}
	}
	return env
}

// runBench gives every planner the same sequence of grids.
func runBench(opts benchOptions, kinds []string) ([]benchResult, error) {
	planners := make([]planner.Planner, 0, len(kinds))
	for _, k := range kinds {
		p, err := planner.New(k)
		if err != nil {
			return nil, err
		}
		planners = append(planners, p)
	}

	results := make([]benchResult, len(planners))
	for i, p := range planners {
		results[i].planner = p.Name()
	}

	rng := rand.New(rand.NewPCG(opts.seed, opts.seed))
	goal := world.Pt(opts.size-1, opts.size-1)
	for t := 0; t < opts.trials; t++ {
		grid := randomGrid(rng, opts.size, opts.density)
		for i, p := range planners {
			began := time.Now()
			res, err := p.Compute(world.Origin, goal, grid)
			r := &results[i]
			r.elapsed += time.Since(began)
			r.iterations += res.Iterations
			r.trials++
			if err == nil && res.Found() {
				r.solved++
			}
		}
	}
	return results, nil
}

func printBench(w io.Writer, opts benchOptions, results []benchResult) {
	fmt.Fprintf(w, "%d×%d grid, density %.2f, %d trials, seed %d\n",
		opts.size, opts.size, opts.density, opts.trials, opts.seed)
	fmt.Fprintf(w, "%-8s %8s %12s %12s\n", "planner", "solved", "avg iter", "avg time")
	for _, r := range results {
		fmt.Fprintf(w, "%-8s %4d/%-3d %12.1f %12s\n",
			r.planner, r.solved, r.trials, r.avgIterations(), r.avgTime())
	}
}
