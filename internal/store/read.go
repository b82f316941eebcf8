package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/polyx/internal/engine"
)

// SessionSummary is one row in the session listing.
type SessionSummary struct {
	ID            string
	Worksheet     string
	CreatedAt     time.Time
	EngineVersion string
	StepCount     int
}

// ReadSession retrieves a recorded session with all of its operations.
// Operations are ordered deterministically: ORDER BY seq ASC, id ASC.
// Returns sql.ErrNoRows if the session does not exist.
func (s *Store) ReadSession(ctx context.Context, id string) (engine.SessionResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, worksheet, created_at, engine_version
		FROM sessions
		WHERE id = ?
	`, id)

	var sess engine.SessionResult
	var createdAt string
	if err := row.Scan(&sess.SessionID, &sess.Worksheet, &createdAt, &sess.EngineVersion); err != nil {
		return engine.SessionResult{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return engine.SessionResult{}, fmt.Errorf("parse created_at: %w", err)
	}
	sess.CreatedAt = ts

	steps, err := s.ReadOperations(ctx, id)
	if err != nil {
		return engine.SessionResult{}, err
	}
	sess.Steps = steps

	return sess, nil
}

// ReadOperations returns all operations recorded for a session.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC.
//
// Returns an empty slice (not nil) if no operations exist for the session.
func (s *Store) ReadOperations(ctx context.Context, sessionID string) ([]engine.StepResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, op, operand, operand_coeffs, with_name, with_coeffs,
		       at_value, value, rendering, result_coeffs, saved_as
		FROM operations
		WHERE session_id = ?
		ORDER BY seq ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var steps []engine.StepResult
	for rows.Next() {
		step, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}

	// Empty result sets decode to empty slices, not nil
	if steps == nil {
		steps = []engine.StepResult{}
	}

	return steps, nil
}

// scanOperation scans a row into a StepResult.
func scanOperation(rows *sql.Rows) (engine.StepResult, error) {
	var step engine.StepResult
	var operandCoeffs string
	var withName, withCoeffs, atValue, value, resultCoeffs, savedAs sql.NullString

	if err := rows.Scan(
		&step.Seq, &step.Op, &step.Operand, &operandCoeffs,
		&withName, &withCoeffs, &atValue, &value,
		&step.Rendering, &resultCoeffs, &savedAs,
	); err != nil {
		return engine.StepResult{}, fmt.Errorf("scan operation: %w", err)
	}

	coeffs, err := decodeCoefficients(operandCoeffs)
	if err != nil {
		return engine.StepResult{}, err
	}
	step.Coefficients = coeffs

	step.With = withName.String

	wc, err := decodeOptionalCoefficients(withCoeffs)
	if err != nil {
		return engine.StepResult{}, err
	}
	step.WithCoefficients = wc

	at, err := decodeFloat(atValue)
	if err != nil {
		return engine.StepResult{}, err
	}
	step.At = at

	val, err := decodeFloat(value)
	if err != nil {
		return engine.StepResult{}, err
	}
	step.Value = val

	rc, err := decodeOptionalCoefficients(resultCoeffs)
	if err != nil {
		return engine.StepResult{}, err
	}
	step.ResultCoefficients = rc

	step.SavedAs = savedAs.String

	return step, nil
}

// ListSessions returns summaries for every recorded session, oldest first.
// Results are ordered deterministically: ORDER BY created_at ASC, id ASC.
//
// Returns an empty slice (not nil) if the store holds no sessions.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.worksheet, s.created_at, s.engine_version, COUNT(o.id)
		FROM sessions s
		LEFT JOIN operations o ON o.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at ASC, s.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Worksheet, &createdAt, &sum.EngineVersion, &sum.StepCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		sum.CreatedAt = ts

		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	if summaries == nil {
		summaries = []SessionSummary{}
	}

	return summaries, nil
}

// LatestSessionID returns the ID of the most recently recorded session.
// Returns sql.ErrNoRows if the store holds no sessions.
func (s *Store) LatestSessionID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM sessions
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
