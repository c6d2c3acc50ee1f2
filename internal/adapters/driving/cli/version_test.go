package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Output(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "churnlens version")
}

func TestSetVersion(t *testing.T) {
	prev := version
	defer func() { version = prev }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	// Empty input keeps the current version.
	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}
