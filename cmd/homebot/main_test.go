package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-homebot/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{config.EnvConfig, config.EnvPlanner, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
	t.Setenv(config.EnvRobotID, "R1")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanCommand(t *testing.T) {
	out, err := execute(t, "", "plan", "--to", "1,1")
	require.NoError(t, err)
	assert.Contains(t, out, "  1  (0, 1)\n")
	assert.Contains(t, out, "  2  (1, 1)\n")
	assert.Contains(t, out, "astar: (0, 0) -> (1, 1) in 2 steps")
}

func TestPlanCommand_Greedy(t *testing.T) {
	out, err := execute(t, "", "plan", "--planner", "greedy", "--to", "3,0")
	require.NoError(t, err)
	assert.Contains(t, out, "greedy: (0, 0) -> (3, 0) in 3 steps (3 iterations)")
}

func TestPlanCommand_Errors(t *testing.T) {
	_, err := execute(t, "", "plan")
	assert.Error(t, err)

	_, err = execute(t, "", "plan", "--to", "x")
	assert.Error(t, err)

	_, err = execute(t, "", "plan", "--to", "1,1", "--planner", "dijkstra")
	assert.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	out, err := execute(t, "", "bench", "--size", "8", "--trials", "3", "--density", "0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "8×8 grid")
	assert.Contains(t, out, "astar")
	assert.Contains(t, out, "greedy")
	assert.Contains(t, out, "/3")

	_, err = execute(t, "", "bench", "--size", "1")
	assert.Error(t, err)
}

func TestRunBench_SameGridsForEveryPlanner(t *testing.T) {
	opts := benchOptions{size: 6, density: 0, trials: 4, seed: 7}
	results, err := runBench(opts, []string{"astar", "greedy"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, 4, r.solved, r.planner)
		assert.Equal(t, 4, r.trials)
	}
	assert.Equal(t, 10.0, results[1].avgIterations())
}

func TestRunCommand_Stdin(t *testing.T) {
	out, err := execute(t, "power on\nspeak hello\nstatus\nexit\n", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "Power on: true\n")
	assert.Contains(t, out, "Speaking hello\n")
	assert.Contains(t, out, "R1 IDLE battery=98%")
}

func TestRunCommand_Script(t *testing.T) {
	script := filepath.Join(t.TempDir(), "demo.txt")
	require.NoError(t, os.WriteFile(script, []byte("navigate 1,1\nhistory\nmetrics\n"), 0o644))

	out, err := execute(t, "", "run", "--power-on", "--script", script)
	require.NoError(t, err)
	assert.Contains(t, out, "Navigating to (0, 1)")
	assert.Contains(t, out, "History: NAVIGATE")
	assert.Contains(t, out, `homebot_ticks_total{command="navigate"} 1`)
}

func TestRunCommand_PickFactsDrop(t *testing.T) {
	out, err := execute(t, "pick cup\nfacts\ndrop\ndrop\ndisplay hi there\n", "run", "--power-on")
	require.NoError(t, err)
	assert.Contains(t, out, "Facts: 1 (actions logged: 1)\n")
	assert.Contains(t, out, "  - picked cup ")
	assert.Contains(t, out, " at (1, 2)\n")
	assert.Contains(t, out, "Dropped last object\nNothing to drop\n")
	assert.Contains(t, out, "Displaying hi there\n")
}

func TestRunCommand_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("planner: teleport\n"), 0o644))

	_, err := execute(t, "", "--config", path, "run")
	assert.ErrorIs(t, err, config.ErrInvalid)
}
