package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScaleCommand(t *testing.T) {
	out, err := execute(t, "scale", "2500")
	require.NoError(t, err)
	assert.Equal(t, "2.500 GWh\n", out)

	out, err = execute(t, "scale", "--family", "power", "0.5", "0.25")
	require.NoError(t, err)
	assert.Equal(t, "unit: kW\n500.000\n250.000\n", out)

	_, err = execute(t, "scale", "--family", "volume", "1")
	assert.Error(t, err)

	_, err = execute(t, "scale", "abc")
	assert.ErrorContains(t, err, "invalid value")
}

func TestCurrencyCommand(t *testing.T) {
	out, err := execute(t, "currency", "1234567.891")
	require.NoError(t, err)
	assert.Equal(t, "$ 1,234,567.891\n", out)
}

func TestTurbinesCommand(t *testing.T) {
	out, err := execute(t, "turbines", "--catalog", "")
	require.NoError(t, err)
	assert.Contains(t, out, "GE 1.5sle")
	assert.Contains(t, out, "1.500 MW")
	assert.Equal(t, 6, strings.Count(out, "\n"))
}

const solarScenario = `
name: Rooftop
solarResult:
  annualEnergy: 2500
  capacityFactor: 18.5
  systemCapacity: 1.5
  monthlyEnergy: [150, 170, 200, 230, 260, 280, 290, 270, 230, 190, 140, 90]
  financials:
    initialCost: 2500000
    cashflow: [-2500000, 300000, 300000]
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(solarScenario), 0o644))
	return path
}

func TestChartCommand(t *testing.T) {
	path := writeScenario(t)

	out, err := execute(t, "chart", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Energy Production")

	dir := t.TempDir()
	out, err = execute(t, "chart", path, "--format", "png", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "chart-monthly-energy-production.png"))

	_, err = execute(t, "chart", path, "--format", "svg")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	t.Setenv("MOCKUP_MODE", "true")
	t.Setenv("LOG_FORMAT", "text")
	dir := t.TempDir()

	out, err := execute(t, "report", writeScenario(t), "--out", dir)
	require.NoError(t, err)

	index := strings.TrimSpace(out)
	assert.True(t, strings.HasSuffix(index, "index.html"))
	assert.FileExists(t, index)
	assert.FileExists(t, filepath.Join(filepath.Dir(index), "report.xlsx"))
}
