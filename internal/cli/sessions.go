package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/polyx/internal/store"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database string
}

// SessionView is one session row in the listing output.
type SessionView struct {
	ID            string    `json:"id" yaml:"id"`
	Worksheet     string    `json:"worksheet" yaml:"worksheet"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	EngineVersion string    `json:"engine_version" yaml:"engine_version"`
	StepCount     int       `json:"step_count" yaml:"step_count"`
}

// SessionListing holds the sessions command's structured output.
type SessionListing struct {
	Sessions      []SessionView `json:"sessions" yaml:"sessions"`
	TotalSessions int           `json:"total_sessions" yaml:"total_sessions"`
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Long: `List every session recorded in the ledger, oldest first.

Examples:
  polyx sessions --db ./polyx.db
  polyx sessions --db ./polyx.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite ledger (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSessions(opts *SessionsOptions, cmd *cobra.Command) error {
	st, err := openLedger(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	summaries, err := st.ListSessions(context.Background())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	listing := SessionListing{
		Sessions:      make([]SessionView, 0, len(summaries)),
		TotalSessions: len(summaries),
	}
	for _, sum := range summaries {
		listing.Sessions = append(listing.Sessions, SessionView{
			ID:            sum.ID,
			Worksheet:     sum.Worksheet,
			CreatedAt:     sum.CreatedAt,
			EngineVersion: sum.EngineVersion,
			StepCount:     sum.StepCount,
		})
	}

	if structured(opts.Format) {
		return writeResponse(cmd.OutOrStdout(), opts.Format, CLIResponse{
			Status: "ok",
			Data:   listing,
		})
	}

	return outputSessionsText(cmd, listing)
}

// openLedger opens an existing ledger database. Read commands refuse to
// create one: a missing path is a command error, not an empty listing.
func openLedger(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitCommandError, "database not found", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// outputSessionsText outputs the session listing as text.
// IDs are printed in full: they are the lookup keys for history and
// replay.
func outputSessionsText(cmd *cobra.Command, listing SessionListing) error {
	w := cmd.OutOrStdout()

	if listing.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return nil
	}

	fmt.Fprintf(w, "Recorded sessions: %d\n", listing.TotalSessions)
	fmt.Fprintln(w)

	for _, sess := range listing.Sessions {
		fmt.Fprintf(w, "Session: %s\n", sess.ID)
		fmt.Fprintf(w, "  Worksheet: %s\n", sess.Worksheet)
		fmt.Fprintf(w, "  Steps:     %d\n", sess.StepCount)
		fmt.Fprintf(w, "  Created:   %s\n", sess.CreatedAt.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	return nil
}
