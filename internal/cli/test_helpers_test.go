package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/polyx/internal/testutil"
)

// validWorksheetCUE exercises every operation once. recordSession and the
// run/sessions/history/replay tests share it so their transcripts line up.
const validWorksheetCUE = `worksheet: {
	name:        "drill"
	description: "cubic drill"
	polynomials: {
		p: [1, -8, 12, 3]
		q: [3, 2]
	}
	steps: [
		{op: "format", poly: "p"},
		{op: "eval", poly: "p", at: 4},
		{op: "differentiate", poly: "p", save: "dp"},
		{op: "add", poly: "p", with: "q", save: "s"},
	]
}
`

// invalidWorksheetCUE parses cleanly but fails semantic validation: an
// unsupported op and a reference to an undefined polynomial.
const invalidWorksheetCUE = `worksheet: {
	name:        "broken"
	description: "fails validation"
	polynomials: {
		p: [1, 2]
	}
	steps: [
		{op: "solve", poly: "p"},
		{op: "eval", poly: "missing", at: 1},
	]
}
`

// writeWorksheet writes a worksheet file under dir and returns its path.
func writeWorksheet(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// recordSession executes a worksheet into dbPath with a fixed session ID
// and deterministic timestamps.
func recordSession(t *testing.T, wsPath, dbPath, sessionID string) {
	t.Helper()

	opts := &RunOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    dbPath,
		IDGenerator: testutil.NewStaticIDGenerator(sessionID),
		TimeSource:  testutil.NewDeterministicClock(),
	}
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, runWorksheet(opts, wsPath, cmd))
}
