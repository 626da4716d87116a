package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execCommand runs the CLI with the given args and captures stdout.
func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, err := execCommand(t, "--format", "xml", "schema")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootAcceptsValidFormats(t *testing.T) {
	for _, format := range ValidFormats {
		_, err := execCommand(t, "--format", format, "schema")
		assert.NoError(t, err, "format %s", format)
	}
}

func TestRootListsSubcommands(t *testing.T) {
	out, err := execCommand(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"ask", "validate", "schema", "seed"} {
		assert.Contains(t, out, sub)
	}
}
