package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/polyx/internal/engine"
	"github.com/roach88/polyx/internal/store"
	"github.com/roach88/polyx/internal/worksheet"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string

	// IDGenerator overrides session ID minting; nil means UUIDv7.
	// Tests inject a fixed generator so recorded IDs are assertable.
	IDGenerator engine.SessionIDGenerator

	// TimeSource overrides session timestamps; nil means system UTC.
	TimeSource engine.TimeSource
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <worksheet.cue>",
		Short: "Execute a worksheet",
		Long: `Load, validate and execute a CUE worksheet.

Steps run in declaration order against the worksheet's polynomials.
Results of differentiate, integrate and add steps may be saved under
new names and used by later steps. With --db, the session and every
step are recorded to a SQLite ledger for later inspection and replay.

Exit codes:
  0 - Worksheet executed
  1 - Validation or execution failure
  2 - Command error (file not found, unreadable database)

Examples:
  polyx run drill.cue
  polyx run drill.cue --db ./polyx.db
  polyx run drill.cue --format json --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorksheet(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite ledger (optional; records the session)")

	return cmd
}

func runWorksheet(opts *RunOptions, path string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("loading worksheet", "path", path)
	ws, err := worksheet.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load worksheet", err)
	}

	if errs := worksheet.Validate(ws); len(errs) > 0 {
		return outputRunValidationErrors(opts, cmd, errs)
	}
	slog.Info("worksheet valid",
		"name", ws.Name,
		"polynomials", len(ws.Polynomials),
		"steps", len(ws.Steps),
	)

	// Open the ledger before executing so a bad path fails fast
	var st *store.Store
	if opts.Database != "" {
		slog.Info("opening ledger", "path", opts.Database)
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
	}

	// Interrupt cancels the run between steps; cobra supplies the parent
	// context in tests.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, cancelling", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Build the executor, honoring test overrides
	var execOpts []engine.ExecutorOption
	if opts.IDGenerator != nil {
		execOpts = append(execOpts, engine.WithIDGenerator(opts.IDGenerator))
	}
	if opts.TimeSource != nil {
		execOpts = append(execOpts, engine.WithTimeSource(opts.TimeSource))
	}
	executor := engine.NewExecutor(execOpts...)

	session, err := executor.Run(ctx, ws)
	if err != nil {
		return WrapExitError(ExitFailure, "worksheet execution failed", err)
	}

	if st != nil {
		if err := st.WriteSession(ctx, *session); err != nil {
			return WrapExitError(ExitCommandError, "failed to record session", err)
		}
		slog.Info("session recorded", "session", session.SessionID, "steps", len(session.Steps))
	}

	if structured(opts.Format) {
		return writeResponse(cmd.OutOrStdout(), opts.Format, CLIResponse{
			Status: "ok",
			Data:   session,
		})
	}

	return outputRunText(cmd, session, opts.Database != "")
}

// outputRunValidationErrors reports worksheet validation failures.
func outputRunValidationErrors(opts *RunOptions, cmd *cobra.Command, errs []worksheet.ValidationError) error {
	w := cmd.OutOrStdout()
	message := fmt.Sprintf("worksheet validation failed with %d error(s)", len(errs))

	if structured(opts.Format) {
		response := CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    "E_VALIDATION",
				Message: message,
				Details: errs,
			},
		}
		if err := writeResponse(w, opts.Format, response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}

	fmt.Fprintln(w, "✗ Worksheet validation failed")
	fmt.Fprintln(w)
	for _, e := range errs {
		fmt.Fprintf(w, "  [%s] %s: %s\n", e.Code, e.Field, e.Message)
	}
	return NewExitError(ExitFailure, message)
}

// outputRunText prints the per-step session transcript.
func outputRunText(cmd *cobra.Command, session *engine.SessionResult, recorded bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Session: %s\n", session.SessionID)
	fmt.Fprintf(w, "Worksheet: %s\n", session.Worksheet)
	fmt.Fprintln(w)

	for _, step := range session.Steps {
		fmt.Fprintf(w, "  [%d] %s -> %q\n", step.Seq, describeStep(step), step.Rendering)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "✓ %d step(s) executed\n", len(session.Steps))
	if recorded {
		fmt.Fprintf(w, "Session recorded: %s\n", session.SessionID)
	}
	return nil
}

// describeStep renders a one-line description of a recorded step.
func describeStep(step engine.StepResult) string {
	desc := step.Op + " " + step.Operand
	switch step.Op {
	case worksheet.OpEval:
		if step.At != nil {
			desc += " at " + strconv.FormatFloat(*step.At, 'g', -1, 64)
		}
	case worksheet.OpAdd:
		if step.With != "" {
			desc += " with " + step.With
		}
	}
	if step.SavedAs != "" {
		desc += " as " + step.SavedAs
	}
	return desc
}
