package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runVersion(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.SetArgs(args)
	require.NoError(t, versionCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	versionVerbose = false
	assert.Equal(t, "resourceapi dev\n", runVersion(t))
}

func TestVersionCommand_Verbose(t *testing.T) {
	output := runVersion(t, "--verbose")

	assert.Contains(t, output, "resourceapi dev")
	assert.Contains(t, output, "commit unknown")
	assert.Contains(t, output, "built unknown")
	assert.Contains(t, output, "go1.")
}