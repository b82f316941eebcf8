package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/polyx/internal/engine"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database  string
	SessionID string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the step timeline for a session",
		Long: `Show the recorded step timeline for a session.

Steps are listed in execution order with their operation, operands and
result renderings. Verbose output adds the coefficients involved.

Examples:
  polyx history --db ./polyx.db --session 0197c5aa-7f2e-7d11-b3c4-8a4f0e2d9c01
  polyx history --db ./polyx.db --session 0197c5aa-7f2e-7d11-b3c4-8a4f0e2d9c01 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite ledger (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.SessionID, "session", "", "session ID to inspect (required)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := openLedger(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := st.ReadSession(context.Background(), opts.SessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("session %s not found", opts.SessionID))
		}
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	if structured(opts.Format) {
		return writeResponse(cmd.OutOrStdout(), opts.Format, CLIResponse{
			Status: "ok",
			Data:   sess,
		})
	}

	return outputHistoryText(cmd, sess, opts.Verbose)
}

// outputHistoryText outputs the session timeline as text.
func outputHistoryText(cmd *cobra.Command, sess engine.SessionResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "History for Session: %s\n", sess.SessionID)
	fmt.Fprintf(w, "Worksheet: %s\n", sess.Worksheet)
	fmt.Fprintf(w, "Engine:    %s\n", sess.EngineVersion)
	fmt.Fprintf(w, "Created:   %s\n", sess.CreatedAt.Format(time.RFC3339))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timeline ===")
	if len(sess.Steps) == 0 {
		fmt.Fprintln(w, "  (no steps)")
	}
	for _, step := range sess.Steps {
		fmt.Fprintf(w, "  [%d] %s -> %q\n", step.Seq, describeStep(step), step.Rendering)
		if verbose {
			fmt.Fprintf(w, "       Coefficients: %v\n", step.Coefficients)
			if step.ResultCoefficients != nil {
				fmt.Fprintf(w, "       Result:       %v\n", step.ResultCoefficients)
			}
		}
	}
	fmt.Fprintln(w)

	saved := 0
	for _, step := range sess.Steps {
		if step.SavedAs != "" {
			saved++
		}
	}

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Total Steps:   %d\n", len(sess.Steps))
	fmt.Fprintf(w, "  Saved Results: %d\n", saved)

	return nil
}
