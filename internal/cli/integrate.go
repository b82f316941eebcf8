package cli

import (
	"github.com/spf13/cobra"
)

// IntegrateResult holds the integrate command's structured output.
type IntegrateResult struct {
	Coefficients   []float64 `json:"coefficients" yaml:"coefficients"`
	Antiderivative []float64 `json:"antiderivative" yaml:"antiderivative"`
	Rendering      string    `json:"rendering" yaml:"rendering"`
}

// NewIntegrateCommand creates the integrate command.
func NewIntegrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate <coefficients...>",
		Short: "Integrate a polynomial",
		Long: `Compute the antiderivative of a polynomial.

Coefficients are listed highest power first. The constant of integration
is fixed at 0, so integrating a derivative recovers the original shape
with a zero constant term.

Examples:
  polyx integrate 3 -16 12
  polyx integrate --format json 6 0 -4`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrate(rootOpts, args, cmd)
		},
	}

	// Negative coefficients look like flags; stop flag parsing at the
	// first positional argument so "-16" stays an argument.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runIntegrate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	p, err := parsePolynomial(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid coefficients", err)
	}

	integral := p.Integrate()

	formatter := NewOutputFormatter(opts, cmd)
	formatter.VerboseLog("antiderivative coefficients: %v", integral.Coefficients())

	return formatter.Success(integral.String(), IntegrateResult{
		Coefficients:   p.Coefficients(),
		Antiderivative: integral.Coefficients(),
		Rendering:      integral.String(),
	})
}
