package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/polyx/internal/engine"
	"github.com/roach88/polyx/internal/store"
	"github.com/roach88/polyx/internal/testutil"
)

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	wsPath := writeWorksheet(t, dir, "drill.cue", validWorksheetCUE)

	t.Run("text_transcript", func(t *testing.T) {
		out, err := executeCommand(t, "run", wsPath)
		require.NoError(t, err)

		assert.Contains(t, out, "Session: ")
		assert.Contains(t, out, "Worksheet: drill")
		assert.Contains(t, out, `[1] format p -> "x³ - 8x² + 12x + 3"`)
		assert.Contains(t, out, `[2] eval p at 4 -> "-13"`)
		assert.Contains(t, out, `[3] differentiate p as dp -> "3x² - 16x + 12"`)
		assert.Contains(t, out, `[4] add p with q as s -> "x³ - 8x² + 15x + 5"`)
		assert.Contains(t, out, "✓ 4 step(s) executed")
		assert.NotContains(t, out, "Session recorded")
	})

	t.Run("json_session", func(t *testing.T) {
		out, err := executeCommand(t, "--format", "json", "run", wsPath)
		require.NoError(t, err)

		var resp struct {
			Status string               `json:"status"`
			Data   engine.SessionResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "drill", resp.Data.Worksheet)
		assert.Equal(t, engine.Version, resp.Data.EngineVersion)
		require.Len(t, resp.Data.Steps, 4)
		assert.Equal(t, "format", resp.Data.Steps[0].Op)
		require.NotNil(t, resp.Data.Steps[1].Value)
		assert.Equal(t, float64(-13), *resp.Data.Steps[1].Value)
	})

	t.Run("records_session", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "polyx.db")

		opts := &RunOptions{
			RootOptions: &RootOptions{Format: "text"},
			Database:    dbPath,
			IDGenerator: testutil.NewStaticIDGenerator("run-record-0001"),
			TimeSource:  testutil.NewDeterministicClock(),
		}
		cmd := &cobra.Command{}
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})

		require.NoError(t, runWorksheet(opts, wsPath, cmd))
		assert.Contains(t, out.String(), "Session: run-record-0001")
		assert.Contains(t, out.String(), "Session recorded: run-record-0001")

		st, err := store.Open(dbPath)
		require.NoError(t, err)
		defer st.Close()

		sess, err := st.ReadSession(context.Background(), "run-record-0001")
		require.NoError(t, err)
		assert.Equal(t, "drill", sess.Worksheet)
		require.Len(t, sess.Steps, 4)
		assert.Equal(t, "x³ - 8x² + 12x + 3", sess.Steps[0].Rendering)
	})

	t.Run("validation_failure", func(t *testing.T) {
		badPath := writeWorksheet(t, dir, "broken.cue", invalidWorksheetCUE)

		out, err := executeCommand(t, "run", badPath)
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, err.Error(), "worksheet validation failed with 2 error(s)")
		assert.Contains(t, out, "✗ Worksheet validation failed")
		assert.Contains(t, out, "[W104]")
	})

	t.Run("validation_failure_json", func(t *testing.T) {
		badPath := writeWorksheet(t, dir, "broken2.cue", invalidWorksheetCUE)

		out, err := executeCommand(t, "--format", "json", "run", badPath)
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "E_VALIDATION", resp.Error.Code)
		assert.NotNil(t, resp.Error.Details)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := executeCommand(t, "run", filepath.Join(dir, "absent.cue"))
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "failed to load worksheet")
	})

	t.Run("bad_database_path", func(t *testing.T) {
		opts := &RunOptions{
			RootOptions: &RootOptions{Format: "text"},
			Database:    filepath.Join(dir, "no", "such", "dir", "polyx.db"),
		}
		cmd := &cobra.Command{}
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		err := runWorksheet(opts, wsPath, cmd)
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "failed to open database")
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		opts := &RunOptions{RootOptions: &RootOptions{Format: "text"}}
		cmd := &cobra.Command{}
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetContext(ctx)

		err := runWorksheet(opts, wsPath, cmd)
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, err.Error(), "worksheet execution failed")
	})
}

func TestDescribeStep(t *testing.T) {
	at := 4.0

	tests := []struct {
		name string
		step engine.StepResult
		want string
	}{
		{
			name: "format",
			step: engine.StepResult{Op: "format", Operand: "p"},
			want: "format p",
		},
		{
			name: "eval",
			step: engine.StepResult{Op: "eval", Operand: "p", At: &at},
			want: "eval p at 4",
		},
		{
			name: "differentiate_saved",
			step: engine.StepResult{Op: "differentiate", Operand: "p", SavedAs: "dp"},
			want: "differentiate p as dp",
		},
		{
			name: "add_with_save",
			step: engine.StepResult{Op: "add", Operand: "p", With: "q", SavedAs: "s"},
			want: "add p with q as s",
		},
		{
			name: "integrate_unsaved",
			step: engine.StepResult{Op: "integrate", Operand: "p"},
			want: "integrate p",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeStep(tt.step))
		})
	}
}
