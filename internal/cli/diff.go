package cli

import (
	"github.com/spf13/cobra"
)

// DiffResult holds the diff command's structured output.
type DiffResult struct {
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Derivative   []float64 `json:"derivative" yaml:"derivative"`
	Rendering    string    `json:"rendering" yaml:"rendering"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diff <coefficients...>",
		Aliases: []string{"differentiate"},
		Short:   "Differentiate a polynomial",
		Long: `Compute the first derivative of a polynomial.

Coefficients are listed highest power first. Differentiating a constant
yields the zero polynomial.

Examples:
  polyx diff 1 -8 12 3
  polyx differentiate --format json 2 0 -4 0`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(rootOpts, args, cmd)
		},
	}

	// Negative coefficients look like flags; stop flag parsing at the
	// first positional argument so "-8" stays an argument.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runDiff(opts *RootOptions, args []string, cmd *cobra.Command) error {
	p, err := parsePolynomial(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid coefficients", err)
	}

	derivative := p.Differentiate()

	formatter := NewOutputFormatter(opts, cmd)
	formatter.VerboseLog("derivative coefficients: %v", derivative.Coefficients())

	return formatter.Success(derivative.String(), DiffResult{
		Coefficients: p.Coefficients(),
		Derivative:   derivative.Coefficients(),
		Rendering:    derivative.String(),
	})
}
