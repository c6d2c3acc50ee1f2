package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCmd_Use(t *testing.T) {
	assert.Equal(t, "build", buildCmd.Use)
}

func TestBuildCmd_HasFlags(t *testing.T) {
	require.NotNil(t, buildCmd.Flags().Lookup("csv"))
	require.NotNil(t, buildCmd.Flags().Lookup("batch-size"))
}

func TestBuildCmd_PrintsSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"build"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Indexed 3333 documents")
	assert.Contains(t, out, "model fake-model")
	assert.Contains(t, out, "/tmp/artifact.db")
	assert.Equal(t, 1, buildService.(*fakeBuildService).calls)
}

func TestBuildCmd_PropagatesFailures(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buildService.(*fakeBuildService).err = assert.AnError

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"build"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, assert.AnError)
}
