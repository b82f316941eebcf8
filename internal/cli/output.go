package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Process exit codes.
const (
	ExitSuccess      = 0 // ran to completion
	ExitFailure      = 1 // verification or validation failed (invalid worksheet, replay divergence, scenario failure)
	ExitCommandError = 2 // command could not run (bad path, unreadable database, malformed argument)
)

// ExitError carries an exit code alongside the error it describes.
// Commands return it from RunE; main translates it via GetExitCode.
type ExitError struct {
	Code    int
	Message string
	Err     error // wrapped cause, nil for leaf errors
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError builds an ExitError from a code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code and context to an underlying error.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps an error to a process exit code. Non-ExitError
// values default to ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the standard envelope for structured CLI output.
type CLIResponse struct {
	Status string      `json:"status" yaml:"status"`                 // "ok" or "error"
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty"` // success payload
	Error  *CLIError   `json:"error,omitempty" yaml:"error,omitempty"`
}

// CLIError is the failure half of the envelope. Code is one of the
// stable E_* identifiers; Details carries structured context such as
// validation error lists or replay mismatches.
type CLIError struct {
	Code    string      `json:"code" yaml:"code"`
	Message string      `json:"message" yaml:"message"`
	Details interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// structured reports whether a format wants the CLIResponse envelope
// rather than human-readable text.
func structured(format string) bool {
	return format == "json" || format == "yaml"
}

// writeResponse encodes a response envelope in the requested structured
// format. Callers handle "text" themselves.
func writeResponse(w io.Writer, format string, resp CLIResponse) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(resp)
	case "yaml":
		out, err := yaml.Marshal(resp)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("format %q has no structured encoding", format)
}

// OutputFormatter renders command results in the selected format.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostic channel; falls back to Writer when nil
	Verbose   bool
}

// NewOutputFormatter builds a formatter bound to a command's writers.
// Diagnostic output goes to stderr so it never corrupts structured stdout.
func NewOutputFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// Success renders a successful result: structured formats wrap data in
// the response envelope, text mode prints the human line only.
func (f *OutputFormatter) Success(text string, data interface{}) error {
	if structured(f.Format) {
		return writeResponse(f.Writer, f.Format, CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, text)
	return nil
}

// Error renders a failure envelope, or a human "Error [CODE]" line in
// text mode (details shown only under --verbose).
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if structured(f.Format) {
		return writeResponse(f.Writer, f.Format, CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog prints a diagnostic line when --verbose is set. It writes
// to ErrWriter so structured stdout stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// GetErrWriter resolves the diagnostic writer, falling back to Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
