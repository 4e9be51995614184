package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/portfolio-simulator/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `name: CLI growth
mode: growth
seed: "2024"
params:
  initial_value: 50000
  expected_return: 0.06
  volatility: 0.1
  duration_years: 5
  cash_flow: 200
  num_paths: 150
  goal: 70000
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))
	return path
}

func TestSimulateJSONIsReplayable(t *testing.T) {
	path := writeScenario(t)

	first, err := runCLI(t, "simulate", path, "--format", "json")
	require.NoError(t, err)
	second, err := runCLI(t, "simulate", path, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(first), &res))
	assert.Equal(t, "2024", res["seed"])
	assert.EqualValues(t, 150, res["num_paths"])
}

func TestSimulateOverrides(t *testing.T) {
	path := writeScenario(t)
	out, err := runCLI(t, "simulate", path, "-f", "json", "--seed", "7", "--paths", "40")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "7", res["seed"])
	assert.EqualValues(t, 40, res["num_paths"])
}

func TestSimulateConsole(t *testing.T) {
	out, err := runCLI(t, "simulate", writeScenario(t))
	require.NoError(t, err)
	assert.Contains(t, out, "PORTFOLIO SIMULATION SUMMARY")
	assert.Contains(t, out, "Goal reached")
}

func TestProjectAndSensitivity(t *testing.T) {
	path := writeScenario(t)

	out, err := runCLI(t, "project", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DETERMINISTIC PROJECTION (growth)")

	out, err = runCLI(t, "sensitivity", path, "--paths", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "CASH FLOW SENSITIVITY")
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "+20%")
}

func TestValidateAndExample(t *testing.T) {
	out, err := runCLI(t, "validate", writeScenario(t))
	require.NoError(t, err)
	assert.Contains(t, out, "CLI growth: valid growth scenario (150 paths)")

	example := filepath.Join(t.TempDir(), "example.yaml")
	_, err = runCLI(t, "example", "--out", example)
	require.NoError(t, err)

	out, err = runCLI(t, "validate", example)
	require.NoError(t, err)
	assert.Contains(t, out, "valid growth scenario")

	out, err = runCLI(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "initial_value")
}

func TestCLIErrors(t *testing.T) {
	_, err := runCLI(t, "simulate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")

	_, err = runCLI(t, "simulate", writeScenario(t), "--format", "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: x\nmode: growth\nparams:\n  initial_value: 0\n"), 0o600))
	_, err = runCLI(t, "validate", bad)
	assert.ErrorContains(t, err, "initial value must be positive")
}
