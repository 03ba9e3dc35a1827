package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_ValidScenario(t *testing.T) {
	out, err := executeCommand(t, "validate", "testdata/passing.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "OK testdata/passing.yaml")
}

func TestValidateCommand_InvalidScenario(t *testing.T) {
	out, err := executeCommand(t, "validate", "testdata/invalid.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "INVALID testdata/invalid.yaml")
	assert.Contains(t, out, "unknown stage")
}

func TestValidateCommand_MixedFiles(t *testing.T) {
	out, err := executeCommand(t, "validate", "testdata/passing.yaml", "testdata/invalid.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "OK testdata/passing.yaml")
	assert.Contains(t, out, "INVALID testdata/invalid.yaml")
	assert.Contains(t, err.Error(), "1 of 2 scenario files invalid")
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	out, err := executeCommand(t, "validate", "--format", "json", "testdata/passing.yaml")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	reports, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, reports, 1)
	report := reports[0].(map[string]interface{})
	assert.Equal(t, true, report["valid"])
}

func TestValidateCommand_NeverExecutes(t *testing.T) {
	// failing.yaml has assertions that cannot hold, but validate only parses.
	out, err := executeCommand(t, "validate", "testdata/failing.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "OK testdata/failing.yaml")
}
