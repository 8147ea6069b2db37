package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_ConsoleLinesCarryTag(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Out: &buf})

	Log().Info("Connecting to database...")
	WithFields(logrus.Fields{"step": "003_seed_roles", "rows": 4}).Info("step applied")
	Log().Debug("hidden at info level")

	assert.Equal(t,
		"[WESMUN] Connecting to database...\n[WESMUN] step applied rows=4 step=003_seed_roles\n",
		buf.String())
}

func TestInit_DebugUsesTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Debug: true, Out: &buf})

	Log().Debug("executing")

	out := buf.String()
	assert.Contains(t, out, "[WESMUN] ")
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, `msg=executing`)
}

func TestInit_MirrorsToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "wesmun.log")
	Init(Options{Out: &buf, File: path})
	t.Cleanup(func() { Init(Options{Out: &bytes.Buffer{}}) })

	Log().Info("Connection closed.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[WESMUN] Connection closed.\n", string(data))
	assert.Equal(t, buf.String(), string(data))
}
