package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	At float64
}

// EvalResult holds the eval command's structured output.
type EvalResult struct {
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	At           float64   `json:"at" yaml:"at"`
	Value        float64   `json:"value" yaml:"value"`
	Rendering    string    `json:"rendering" yaml:"rendering"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval --at <x> <coefficients...>",
		Short: "Evaluate a polynomial at a point",
		Long: `Evaluate a polynomial at a point.

Coefficients are listed highest power first. The value is printed with
the shortest decimal rendering that round-trips.

Examples:
  polyx eval --at 4 1 -8 12 3
  polyx eval --at 0.5 --format json 2 0 -4 0`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.At, "at", 0, "point to evaluate at (required)")
	_ = cmd.MarkFlagRequired("at")

	// Negative coefficients look like flags; stop flag parsing at the
	// first positional argument so "-8" stays an argument.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runEval(opts *EvalOptions, args []string, cmd *cobra.Command) error {
	// ParseFloat accepts "NaN" and "Inf" flag values; worksheets cannot
	// express them, and the direct command matches that surface.
	if math.IsNaN(opts.At) || math.IsInf(opts.At, 0) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid --at value %v: must be a finite number", opts.At))
	}

	p, err := parsePolynomial(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid coefficients", err)
	}

	value := p.Evaluate(opts.At)
	rendering := strconv.FormatFloat(value, 'g', -1, 64)

	formatter := NewOutputFormatter(opts.RootOptions, cmd)
	formatter.VerboseLog("%s at x=%v", p.String(), opts.At)

	return formatter.Success(rendering, EvalResult{
		Coefficients: p.Coefficients(),
		At:           opts.At,
		Value:        value,
		Rendering:    rendering,
	})
}
