package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/polyx/internal/worksheet"
)

// FileValidation holds the validation outcome for a single worksheet file.
type FileValidation struct {
	Path   string                      `json:"path" yaml:"path"`
	Valid  bool                        `json:"valid" yaml:"valid"`
	Errors []worksheet.ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ValidationResult holds validation results across all checked files.
type ValidationResult struct {
	Files []FileValidation `json:"files" yaml:"files"`
	Valid bool             `json:"valid" yaml:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <worksheet.cue>...",
		Short: "Validate worksheets without executing them",
		Long: `Validate CUE worksheet files without executing any steps.

Performs CUE parsing plus semantic checks: supported ops, operand
references in step order, required step fields, and save-name
collisions. All errors are reported, not just the first.

Exit codes:
  0 - All worksheets valid
  1 - Validation errors found
  2 - Command error (file not found, malformed CUE)

Examples:
  polyx validate drill.cue
  polyx validate worksheets/*.cue --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts, cmd)

	result := ValidationResult{
		Files: make([]FileValidation, 0, len(paths)),
		Valid: true,
	}

	for _, path := range paths {
		formatter.VerboseLog("Validating worksheet: %s", path)

		ws, err := worksheet.Load(path)
		if err != nil {
			// Unreadable or malformed files are command errors, not
			// validation findings.
			_ = formatter.Error("E_LOAD", fmt.Sprintf("failed to load %s", path), err.Error())
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", path), err)
		}

		errs := worksheet.Validate(ws)
		result.Files = append(result.Files, FileValidation{
			Path:   path,
			Valid:  len(errs) == 0,
			Errors: errs,
		})
		if len(errs) > 0 {
			result.Valid = false
		}
	}

	if structured(opts.Format) {
		return outputValidateStructured(formatter, result)
	}
	return outputValidateText(formatter, result)
}

// validationFailureMessage summarizes the total error count.
func validationFailureMessage(result ValidationResult) string {
	count := 0
	for _, file := range result.Files {
		count += len(file.Errors)
	}
	return fmt.Sprintf("validation failed with %d error(s)", count)
}

// outputValidateStructured outputs validation results as JSON or YAML.
func outputValidateStructured(formatter *OutputFormatter, result ValidationResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.Valid {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_VALIDATION",
			Message: validationFailureMessage(result),
		}
	}

	if err := writeResponse(formatter.Writer, formatter.Format, response); err != nil {
		return err
	}

	if !result.Valid {
		// The envelope is already written; the error only carries the code.
		return NewExitError(ExitFailure, validationFailureMessage(result))
	}
	return nil
}

// outputValidateText outputs validation results as text.
func outputValidateText(formatter *OutputFormatter, result ValidationResult) error {
	w := formatter.Writer

	for _, file := range result.Files {
		if file.Valid {
			fmt.Fprintf(w, "✓ %s\n", file.Path)
			continue
		}

		fmt.Fprintf(w, "✗ %s\n", file.Path)
		for _, err := range file.Errors {
			fmt.Fprintf(w, "    [%s] %s: %s\n", err.Code, err.Field, err.Message)
		}
	}
	fmt.Fprintln(w)

	if result.Valid {
		fmt.Fprintln(w, "✓ All worksheets valid")
		return nil
	}

	fmt.Fprintln(w, "✗ Validation failed")
	return NewExitError(ExitFailure, validationFailureMessage(result))
}
