package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/polyx/poly"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	With string
}

// AddResult holds the add command's structured output.
type AddResult struct {
	Coefficients     []float64 `json:"coefficients" yaml:"coefficients"`
	WithCoefficients []float64 `json:"with_coefficients" yaml:"with_coefficients"`
	Sum              []float64 `json:"sum" yaml:"sum"`
	Rendering        string    `json:"rendering" yaml:"rendering"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add --with <coefficients> <coefficients...>",
		Short: "Add two polynomials",
		Long: `Add two polynomials coefficient-wise.

The first operand's coefficients are listed as arguments, highest power
first. The second operand is given to --with as a comma-separated list.
Operands of different degrees align at the constant term.

Examples:
  polyx add --with 3,2 1 -8 12 3
  polyx add --with -1,0,5 --format json 2 0 -4 0`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.With, "with", "", "second operand's coefficients, comma-separated (required)")
	_ = cmd.MarkFlagRequired("with")

	// Negative coefficients look like flags; stop flag parsing at the
	// first positional argument so "-8" stays an argument.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runAdd(opts *AddOptions, args []string, cmd *cobra.Command) error {
	p, err := parsePolynomial(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid coefficients", err)
	}

	withCoeffs, err := parseCoefficientList(opts.With)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --with coefficients", err)
	}
	q, err := poly.New(withCoeffs...)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --with coefficients", err)
	}

	sum := p.Add(q)

	formatter := NewOutputFormatter(opts.RootOptions, cmd)
	formatter.VerboseLog("sum coefficients: %v", sum.Coefficients())

	return formatter.Success(sum.String(), AddResult{
		Coefficients:     p.Coefficients(),
		WithCoefficients: q.Coefficients(),
		Sum:              sum.Coefficients(),
		Rendering:        sum.String(),
	})
}
