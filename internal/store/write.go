package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/polyx/internal/engine"
)

// WriteSession inserts a session header and all of its recorded operations
// in a single transaction.
// Uses ON CONFLICT DO NOTHING for idempotency - recording the same session
// twice leaves the original rows in place.
func (s *Store) WriteSession(ctx context.Context, sess engine.SessionResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := insertSession(ctx, tx, sess); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	for _, step := range sess.Steps {
		if err := insertOperation(ctx, tx, sess.SessionID, step); err != nil {
			return fmt.Errorf("write session: step %d: %w", step.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write session: commit: %w", err)
	}

	return nil
}

// WriteOperation inserts a single operation record.
// Uses ON CONFLICT(session_id, seq) DO NOTHING for idempotency - a
// duplicate (session, seq) pair is silently ignored.
//
// Note: The session referenced by sessionID must exist (foreign key constraint).
func (s *Store) WriteOperation(ctx context.Context, sessionID string, step engine.StepResult) error {
	if err := insertOperation(ctx, s.db, sessionID, step); err != nil {
		return fmt.Errorf("write operation: %w", err)
	}
	return nil
}

// execer is the subset of sql.DB and sql.Tx the insert helpers need.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSession(ctx context.Context, ex execer, sess engine.SessionResult) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO sessions
		(id, worksheet, created_at, engine_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.SessionID,
		sess.Worksheet,
		sess.CreatedAt.UTC().Format(time.RFC3339Nano),
		sess.EngineVersion,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func insertOperation(ctx context.Context, ex execer, sessionID string, step engine.StepResult) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO operations
		(session_id, seq, op, operand, operand_coeffs, with_name, with_coeffs,
		 at_value, value, rendering, result_coeffs, saved_as)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, seq) DO NOTHING
	`,
		sessionID,
		step.Seq,
		step.Op,
		step.Operand,
		encodeCoefficients(step.Coefficients),
		nullableText(step.With),
		encodeOptionalCoefficients(step.WithCoefficients),
		encodeFloat(step.At),
		encodeFloat(step.Value),
		step.Rendering,
		encodeOptionalCoefficients(step.ResultCoefficients),
		nullableText(step.SavedAs),
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}
