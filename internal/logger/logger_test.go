package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Writer(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Writer: &buf, Debug: true})
	require.NoError(t, err)

	L().Debug("circuit.parsed", "elements", 3)
	assert.Contains(t, buf.String(), "circuit.parsed")
	assert.Contains(t, buf.String(), "elements=3")

	require.NoError(t, cleanup())
	buf.Reset()
	L().Info("dropped")
	assert.Empty(t, buf.String())
}

func TestSetup_InfoLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Writer: &buf})
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	L().Debug("hidden")
	L().Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eiscircuit.log")
	cleanup, err := Setup(Config{Path: path})
	require.NoError(t, err)

	L().Info("simulate.done", "points", 71)
	require.NoError(t, cleanup())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"simulate.done"`)
	assert.Contains(t, string(b), `"points":71`)
}

func TestSetup_Discard(t *testing.T) {
	cleanup, err := Setup(Config{})
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	assert.NotNil(t, L())
	assert.NoError(t, cleanup())
}
