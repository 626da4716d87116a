package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAllowsRead(t *testing.T) {
	out, err := execCommand(t, "validate", "SELECT name FROM patients")
	require.NoError(t, err)
	assert.Contains(t, out, "allowed")
}

func TestValidateRejectsWrite(t *testing.T) {
	out, err := execCommand(t, "validate", "DROP TABLE patients")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "rejected")
}

func TestValidateJSONVerdict(t *testing.T) {
	out, err := execCommand(t, "--format", "json", "validate", "SELECT 1; DROP TABLE patients")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	payload, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, payload["allowed"])
}

func TestValidateNormalizesTrailingSemicolon(t *testing.T) {
	out, err := execCommand(t, "--format", "json", "validate", "SELECT name FROM patients;")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	payload, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, payload["allowed"])
	assert.Equal(t, "SELECT name FROM patients", payload["normalized"])
}
