package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFormatCommand(t *testing.T) {
	t.Run("cubic", func(t *testing.T) {
		out, err := executeCommand(t, "format", "1", "-8", "12", "3")
		require.NoError(t, err)
		assert.Equal(t, "x³ - 8x² + 12x + 3\n", out)
	})

	t.Run("leading_negative_after_dashes", func(t *testing.T) {
		// A leading "-8" would parse as a flag; "--" ends flag parsing.
		out, err := executeCommand(t, "format", "--", "-8", "12")
		require.NoError(t, err)
		assert.Equal(t, "-8x + 12\n", out)
	})

	t.Run("zero_polynomial_renders_empty", func(t *testing.T) {
		out, err := executeCommand(t, "format", "0", "0", "0")
		require.NoError(t, err)
		assert.Equal(t, "\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, "--format", "json", "format", "1", "-8", "12", "3")
		require.NoError(t, err)

		var resp CLIResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "ok", resp.Status)

		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "x³ - 8x² + 12x + 3", data["rendering"])
		assert.Equal(t, float64(3), data["degree"])
		assert.Equal(t, []interface{}{1.0, -8.0, 12.0, 3.0}, data["coefficients"])
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := executeCommand(t, "--format", "yaml", "format", "2", "0", "-4", "0")
		require.NoError(t, err)

		var resp struct {
			Status string       `yaml:"status"`
			Data   FormatResult `yaml:"data"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "2x³ - 4x", resp.Data.Rendering)
		assert.Equal(t, 3, resp.Data.Degree)
	})

	t.Run("bad_coefficient", func(t *testing.T) {
		_, err := executeCommand(t, "format", "1", "banana")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "invalid coefficients")
	})

	t.Run("non_finite_coefficient", func(t *testing.T) {
		_, err := executeCommand(t, "format", "NaN")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "finite")
	})

	t.Run("no_arguments", func(t *testing.T) {
		_, err := executeCommand(t, "format")
		require.Error(t, err)
	})
}
