package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCommand(t *testing.T) {
	t.Run("cubic_at_four", func(t *testing.T) {
		out, err := executeCommand(t, "eval", "--at", "4", "1", "-8", "12", "3")
		require.NoError(t, err)
		assert.Equal(t, "-13\n", out)
	})

	t.Run("constant", func(t *testing.T) {
		out, err := executeCommand(t, "eval", "--at", "100", "7")
		require.NoError(t, err)
		assert.Equal(t, "7\n", out)
	})

	t.Run("fractional_point", func(t *testing.T) {
		out, err := executeCommand(t, "eval", "--at", "0.5", "2", "0", "-4", "0")
		require.NoError(t, err)
		assert.Equal(t, "-1.75\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, "--format", "json", "eval", "--at", "4", "1", "-8", "12", "3")
		require.NoError(t, err)

		var resp CLIResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "ok", resp.Status)

		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(4), data["at"])
		assert.Equal(t, float64(-13), data["value"])
		assert.Equal(t, "-13", data["rendering"])
	})

	t.Run("missing_at", func(t *testing.T) {
		_, err := executeCommand(t, "eval", "1", "-8", "12", "3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at")
	})

	t.Run("non_finite_at", func(t *testing.T) {
		_, err := executeCommand(t, "eval", "--at", "NaN", "1", "2")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "finite")
	})

	t.Run("bad_coefficient", func(t *testing.T) {
		_, err := executeCommand(t, "eval", "--at", "4", "x")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}
