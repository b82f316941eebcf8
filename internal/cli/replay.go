package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/polyx/internal/engine"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database  string
	SessionID string // optional - specific session only
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []*engine.VerifyResult `json:"sessions" yaml:"sessions"`
	TotalSessions    int                    `json:"total_sessions" yaml:"total_sessions"`
	AllDeterministic bool                   `json:"all_deterministic" yaml:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-execute recorded sessions and verify determinism",
		Long: `Re-execute recorded operations and verify the stored results match.

Every step is recomputed from its recorded inputs and compared field by
field against the stored result. Session identity and timestamps are
not compared; everything else must match bit for bit.

Exit codes:
  0 - All sessions verified deterministic
  1 - Divergence detected (stored results do not match re-execution)
  2 - Command error (missing or unreadable ledger, unknown session)

Examples:
  polyx replay --db ./polyx.db
  polyx replay --db ./polyx.db --session 0197c5aa-7f2e-7d11-b3c4-8a4f0e2d9c01
  polyx replay --db ./polyx.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite ledger (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.SessionID, "session", "", "replay a specific session only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openLedger(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	// Get session IDs to verify
	var ids []string
	if opts.SessionID != "" {
		ids = []string{opts.SessionID}
	} else {
		summaries, err := st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		for _, sum := range summaries {
			ids = append(ids, sum.ID)
		}
	}

	if len(ids) == 0 {
		if structured(opts.Format) {
			result := ReplayResult{
				Sessions:         []*engine.VerifyResult{},
				TotalSessions:    0,
				AllDeterministic: true,
			}
			return outputReplayStructured(cmd, opts.Format, result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found in database.")
		return nil
	}

	// Verify each session
	result := ReplayResult{
		Sessions:         make([]*engine.VerifyResult, 0, len(ids)),
		TotalSessions:    len(ids),
		AllDeterministic: true,
	}

	for _, id := range ids {
		recorded, err := st.ReadSession(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NewExitError(ExitCommandError, fmt.Sprintf("session %s not found", id))
			}
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read session %s", id), err)
		}

		replayed, err := engine.Reexecute(&recorded)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", id), err)
		}

		verify := engine.Verify(&recorded, replayed)
		result.Sessions = append(result.Sessions, verify)
		if !verify.Match {
			result.AllDeterministic = false
		}
	}

	if structured(opts.Format) {
		return outputReplayStructured(cmd, opts.Format, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// outputReplayStructured outputs the replay result as JSON or YAML.
func outputReplayStructured(cmd *cobra.Command, format string, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "determinism verification failed",
		}
	}

	if err := writeResponse(cmd.OutOrStdout(), format, response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		// Divergence = exit code 1
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", result.TotalSessions)
	fmt.Fprintln(w)

	for _, sess := range result.Sessions {
		status := "✓"
		if !sess.Match {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Session: %s\n", status, truncateID(sess.SessionID))
		fmt.Fprintf(w, "  Worksheet: %s\n", sess.Worksheet)
		fmt.Fprintf(w, "  Steps: %d\n", sess.StepCount)

		if verbose || !sess.Match {
			for _, m := range sess.Mismatches {
				if m.Seq > 0 {
					fmt.Fprintf(w, "  Mismatch [%d] %s: recorded %s, replayed %s\n",
						m.Seq, m.Field, m.Recorded, m.Replayed)
				} else {
					fmt.Fprintf(w, "  Mismatch %s: recorded %s, replayed %s\n",
						m.Field, m.Recorded, m.Replayed)
				}
			}
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All sessions verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}

// truncateID shortens a UUID to its first and last eight characters for
// report headers. Short IDs pass through untouched.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
