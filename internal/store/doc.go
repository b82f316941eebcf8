// Package store provides SQLite-backed durable storage for recorded
// polynomial sessions.
//
// The store implements an append-only ledger with:
//   - Sessions: one row per executed worksheet
//   - Operations: one row per recorded step result
//
// # Invariants
//
// Idempotent Writes
//   - All inserts use ON CONFLICT DO NOTHING
//   - Re-recording a session never overwrites the original rows
//
// Deterministic Reads
//   - All queries order by seq ASC, id ASC
//   - A replay sees operations in the exact order they were recorded
//
// Exact Floats
//   - Coefficients and values are stored as TEXT in Go's shortest
//     round-trip form, never as REAL
//   - SQLite REAL cannot hold NaN (it decays to NULL)
//
// # Database Configuration
//
//   - WAL journal: readers stay live while a session records
//   - synchronous=NORMAL: durable enough under WAL without per-row fsync
//   - busy_timeout=5000: back off up to 5s on a locked ledger
//   - foreign_keys=ON: operations must reference their session
package store
