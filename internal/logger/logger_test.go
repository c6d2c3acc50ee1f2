package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_SilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	SetVerbose(false)

	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestLogger_VerboseOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	SetVerbose(true)

	assert.True(t, IsVerbose())

	Debug("value is %d", 42)
	Info("loaded")
	Warn("careful")
	Section("Build")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] value is 42")
	assert.Contains(t, out, "[INFO] loaded")
	assert.Contains(t, out, "[WARN] careful")
	assert.Contains(t, out, "=== Build ===")
}
