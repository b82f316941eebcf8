package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "polyx", cmd.Use)
	assert.Contains(t, cmd.Short, "polynomial")
	assert.NotEmpty(t, cmd.Long)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	commands := []string{
		"format",
		"eval",
		"diff",
		"integrate",
		"add",
		"validate",
		"run",
		"test",
		"sessions",
		"history",
		"replay",
	}

	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestDiffAlias(t *testing.T) {
	cmd := NewRootCommand()

	sub, _, err := cmd.Find([]string{"differentiate"})
	require.NoError(t, err)
	assert.Equal(t, "diff", sub.Name())
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	t.Run("verbose", func(t *testing.T) {
		flag := cmd.PersistentFlags().Lookup("verbose")
		require.NotNil(t, flag)
		assert.Equal(t, "v", flag.Shorthand)
		assert.Equal(t, "false", flag.DefValue)
	})

	t.Run("format", func(t *testing.T) {
		flag := cmd.PersistentFlags().Lookup("format")
		require.NotNil(t, flag)
		assert.Equal(t, "text", flag.DefValue)
	})
}

func TestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		command string
		flag    string
	}{
		{"eval", "at"},
		{"add", "with"},
		{"run", "db"},
		{"test", "filter"},
		{"sessions", "db"},
		{"history", "db"},
		{"history", "session"},
		{"replay", "db"},
		{"replay", "session"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"_"+tt.flag, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)
			assert.NotNil(t, sub.Flags().Lookup(tt.flag))
		})
	}
}

func TestFormatValidation(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
	}{
		{"text", true},
		{"json", true},
		{"yaml", true},
		{"xml", false},
		{"", false},
		{"TEXT", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidFormat(tt.format))
		})
	}
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--format", "xml", "format", "1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

// executeCommand runs the root command with the given arguments and
// captures stdout. Stderr is discarded; tests that care about
// diagnostics wire their own writer.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
