package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskSQLOnly(t *testing.T) {
	out, err := execCommand(t, "ask", "--sql-only", "Show all patients older than 60")
	require.NoError(t, err)
	assert.Contains(t, out, "WHERE age > ?")
	assert.Contains(t, out, "60")
	// No execution, so no table output.
	assert.NotContains(t, out, "(0 rows)")
}

func TestAskNoTranslation(t *testing.T) {
	out, err := execCommand(t, "ask", "--sql-only", "quantum flux capacitor readings")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "could not translate")
}

func TestAskSQLOnlyJSON(t *testing.T) {
	out, err := execCommand(t, "--format", "json", "ask", "--sql-only", "How many doctors are there?")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	payload, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "doctor_census", payload["rule"])
	assert.Contains(t, payload["sql"], "total_doctors")
}

func TestAskExecutesAgainstSeededDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "medq.db")

	_, err := execCommand(t, "seed", "--db", dbPath)
	require.NoError(t, err)

	out, err := execCommand(t, "--format", "json", "ask", "--db", dbPath, "How many patients do we have?")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	payload, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	result, ok := payload["result"].(map[string]any)
	require.True(t, ok)

	rows, ok := result["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	first, ok := rows[0].([]any)
	require.True(t, ok)
	assert.Equal(t, float64(200), first[0])
}

func TestAskSafeModeOnEmptyDatabase(t *testing.T) {
	// Opened but never seeded: tables exist, so this exercises the
	// normal empty-result path rather than safe mode's missing-table
	// fallback, and must still succeed.
	dbPath := filepath.Join(t.TempDir(), "medq.db")

	out, err := execCommand(t, "ask", "--db", dbPath, "--safe", "Show all patients")
	require.NoError(t, err)
	assert.Contains(t, out, "(no rows)")
}
