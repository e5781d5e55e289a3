package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eiscircuit/cdc"
	"github.com/katalvlaran/eiscircuit/param"
)

// run executes one command line against a fresh command tree.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

const projectYAML = `
sweep: {start: 1, stop: 100, points_per_decade: 2}
elements:
  - {symbol: Rs, name: Series resistance, base: R, parameters: {R: {default: 10}}}
circuits:
  - {name: cell, cdc: "Rs(RC)"}
`

func writeProject(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(projectYAML), 0o644))
	return path
}

func TestParseCmd(t *testing.T) {
	out, err := run(t, "", "parse", "R{R=100}(R{R=200}C{C=0.000001}{fixed=true})")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 4)
	assert.Equal(t, "R{R=100}(R{R=200}C{C=1e-06F})", got[0])
	assert.Equal(t, []string{"R1.R", "100", "[0,", "inf]", "free"}, strings.Fields(got[1]))
	assert.Equal(t, []string{"C1.C", "1e-06", "[0,", "inf]", "fixed"}, strings.Fields(got[3]))

	out, err = run(t, "", "parse", "-q", " R ( C , R ) ")
	require.NoError(t, err)
	assert.Equal(t, "R(CR)\n", out)
}

func TestParseCmd_Error(t *testing.T) {
	_, err := run(t, "", "parse", "R(C")
	require.Error(t, err)
	assert.ErrorIs(t, err, cdc.ErrUnbalancedBrackets)
	assert.Contains(t, err.Error(), "offset 1")

	_, err = run(t, "", "parse")
	assert.Error(t, err)
}

func TestSimulateCmd(t *testing.T) {
	out, err := run(t, "", "simulate", "R{R=100}", "--spacing", "lin", "--start", "10", "--stop", "20", "--points", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"freq,real,imag,mag,phase_deg",
		"10,100,0,100,0",
		"20,100,0,100,0",
	}, lines(out))
}

func TestSimulateCmd_DefaultSweep(t *testing.T) {
	out, err := run(t, "", "simulate", "R(RC)", "--descending", "--precision", "6")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 72, "header plus 71 points from 1e-2 to 1e5")
	assert.True(t, strings.HasPrefix(got[1], "100000,"))
	assert.True(t, strings.HasPrefix(got[71], "0.01,"))
}

func TestSimulateCmd_Set(t *testing.T) {
	out, err := run(t, "", "simulate", "R", "--set", "R1.R=2k", "--start", "1", "--stop", "1", "--points", "1")
	require.NoError(t, err)
	assert.Equal(t, "1,2000,0,2000,0", lines(out)[1])

	_, err = run(t, "", "simulate", "R", "--set", "R1.R=-5")
	assert.ErrorIs(t, err, param.ErrOutOfBounds)

	_, err = run(t, "", "simulate", "R", "--set", "R9.R=5")
	assert.Error(t, err)

	_, err = run(t, "", "simulate", "R", "--spacing", "lin")
	assert.Error(t, err, "linear spacing needs --points")
}

func TestSimulateCmd_Config(t *testing.T) {
	path := writeProject(t)
	out, err := run(t, "", "--config", path, "simulate", "cell")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 6, "header plus 5 points over two decades")
	assert.True(t, strings.HasPrefix(got[1], "1,"))

	// The preset symbol is usable in plain CDC too.
	out, err = run(t, "", "--config", path, "parse", "-q", "Rs{R=20}C")
	require.NoError(t, err)
	assert.Equal(t, "Rs{R=20}C\n", out)
}

func TestElementsCmd(t *testing.T) {
	out, err := run(t, "", "elements")
	require.NoError(t, err)
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "Resistor")
	assert.Contains(t, out, "R=1000 ohm [0, inf]")
	assert.Contains(t, out, "Z=Q")

	out, err = run(t, "", "--config", writeProject(t), "elements")
	require.NoError(t, err)
	assert.Contains(t, out, "Series resistance")
}

func TestConvertCmd_RoundTrip(t *testing.T) {
	js, err := run(t, "", "convert", "R{R=100}(R{R=200}C{C=1e-6F})")
	require.NoError(t, err)
	assert.Contains(t, js, `"symbol"`)
	assert.Contains(t, js, `"parallel"`)

	path := filepath.Join(t.TempDir(), "circuit.json")
	require.NoError(t, os.WriteFile(path, []byte(js), 0o644))
	out, err := run(t, "", "convert", "--from-json", path)
	require.NoError(t, err)
	assert.Equal(t, "R{R=100}(R{R=200}C{C=1e-06F})\n", out)

	out, err = run(t, js, "convert", "--from-json", "-")
	require.NoError(t, err)
	assert.Equal(t, "R{R=100}(R{R=200}C{C=1e-06F})\n", out)
}

func TestConvertCmd_Query(t *testing.T) {
	out, err := run(t, "", "convert", "R(RC)", "--query", "$..symbol")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{`"R"`, `"R"`, `"C"`}, lines(out))

	_, err = run(t, "", "convert", "R", "--query", "$[")
	assert.Error(t, err)

	_, err = run(t, "{", "convert", "--from-json", "-")
	assert.Error(t, err)
}

func TestDebugLogging(t *testing.T) {
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--debug", "parse", "-q", "RC"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "RC\n", out.String())
	assert.Contains(t, errOut.String(), "circuit.parsed")
}
