package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"rendering": "x + 1"}
	err := formatter.Success("x + 1", data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_YAMLSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "yaml",
		Writer: buf,
	}

	data := map[string]string{"rendering": "x + 1"}
	err := formatter.Success("x + 1", data)
	require.NoError(t, err)

	var resp CLIResponse
	err = yaml.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E_VALIDATION", "validation failed", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, "E_VALIDATION", resp.Error.Code)
	assert.Equal(t, "validation failed", resp.Error.Message)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := map[string]string{"file": "worksheet.cue", "code": "W101"}
	err := formatter.Error("E_VALIDATION", "missing worksheet name", details)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("x³ - 8x² + 12x + 3", map[string]string{"ignored": "payload"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "x³ - 8x² + 12x + 3")
	assert.NotContains(t, buf.String(), "ignored")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("E_LOAD", "failed to load worksheet", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E_LOAD]")
	assert.Contains(t, buf.String(), "failed to load worksheet")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"file": "worksheet.cue"}
	err := formatter.Error("E_LOAD", "failed to load worksheet", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E_LOAD]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Processing %s", "worksheet.cue")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Processing worksheet.cue")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   true,
	}

	formatter.VerboseLog("loading %s", "worksheet.cue")

	assert.Empty(t, out.String(), "diagnostics must not mix with structured output")
	assert.Contains(t, errOut.String(), "loading worksheet.cue")
}

func TestOutputFormatter_GetErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	withErr := &OutputFormatter{Writer: out, ErrWriter: errOut}
	assert.Same(t, errOut, withErr.GetErrWriter().(*bytes.Buffer))

	withoutErr := &OutputFormatter{Writer: out}
	assert.Same(t, out, withoutErr.GetErrWriter().(*bytes.Buffer))
}

func TestCLIResponse_JSON(t *testing.T) {
	resp := CLIResponse{
		Status: "ok",
		Data:   map[string]int{"step_count": 4},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded CLIResponse
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, "ok", decoded.Status)
}

func TestCLIError_JSON(t *testing.T) {
	cliErr := CLIError{
		Code:    "E_VALIDATION",
		Message: "validation failed",
		Details: []string{"[steps[0].op] unsupported operation"},
	}

	data, err := json.Marshal(cliErr)
	require.NoError(t, err)

	var decoded CLIError
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, "E_VALIDATION", decoded.Code)
	assert.Equal(t, "validation failed", decoded.Message)
}

func TestExitError(t *testing.T) {
	t.Run("message_only", func(t *testing.T) {
		err := NewExitError(ExitCommandError, "database not found")
		assert.Equal(t, "database not found", err.Error())
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		cause := errors.New("no such file")
		err := WrapExitError(ExitCommandError, "failed to open database", cause)
		assert.Equal(t, "failed to open database: no such file", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("wrapped_deeper", func(t *testing.T) {
		inner := NewExitError(ExitFailure, "determinism verification failed")
		outer := fmt.Errorf("replay: %w", inner)
		assert.Equal(t, ExitFailure, GetExitCode(outer))
	})

	t.Run("plain_error_defaults_to_failure", func(t *testing.T) {
		assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	})
}

func TestWriteResponse_UnknownFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	err := writeResponse(buf, "text", CLIResponse{Status: "ok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no structured encoding")
}
