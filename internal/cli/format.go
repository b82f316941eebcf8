package cli

import (
	"github.com/spf13/cobra"
)

// FormatResult holds the format command's structured output.
type FormatResult struct {
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Degree       int       `json:"degree" yaml:"degree"`
	Rendering    string    `json:"rendering" yaml:"rendering"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <coefficients...>",
		Short: "Render a polynomial in display form",
		Long: `Render a polynomial in its canonical display form.

Coefficients are listed highest power first. Unit coefficients drop the
leading 1, zero-coefficient terms are skipped, and the zero polynomial
renders as an empty string.

Examples:
  polyx format 1 -8 12 3
  polyx format --format json 2 0 -4 0`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(rootOpts, args, cmd)
		},
	}

	// Negative coefficients look like flags; stop flag parsing at the
	// first positional argument so "-8" stays an argument.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runFormat(opts *RootOptions, args []string, cmd *cobra.Command) error {
	p, err := parsePolynomial(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid coefficients", err)
	}

	formatter := NewOutputFormatter(opts, cmd)
	formatter.VerboseLog("degree %d polynomial", p.Degree())

	return formatter.Success(p.String(), FormatResult{
		Coefficients: p.Coefficients(),
		Degree:       p.Degree(),
		Rendering:    p.String(),
	})
}
