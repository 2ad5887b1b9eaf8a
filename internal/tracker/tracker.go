package tracker

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AppliedScript represents a row of the SchemaVersions table.
type AppliedScript struct {
	ID         int64
	ScriptName string
	AppliedAt  time.Time
}

// Querier is the subset of *sql.Tx, *sql.Conn and *sql.DB the tracker needs.
// The runner passes its enclosing transaction so ledger writes share the
// script's savepoint.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tracker manages the SchemaVersions table.
type Tracker struct {
	q Querier
}

// New creates a Tracker that runs every statement on q.
func New(q Querier) *Tracker {
	return &Tracker{q: q}
}

// EnsureTable creates the SchemaVersions table if it does not exist.
func (t *Tracker) EnsureTable(ctx context.Context) error {
	if _, err := t.q.ExecContext(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("%w: %w", ErrTableCreation, err)
	}

	return nil
}

// ListApplied returns the set of recorded script names.
func (t *Tracker) ListApplied(ctx context.Context) (map[string]struct{}, error) {
	rows, err := t.q.QueryContext(ctx, `SELECT ScriptName FROM main.SchemaVersions`)
	if err != nil {
		return nil, fmt.Errorf("querying applied scripts: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning applied script name: %w", err)
		}

		applied[name] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading applied scripts: %w", err)
	}

	return applied, nil
}

// GetApplied returns every ledger row in the order the scripts were applied.
func (t *Tracker) GetApplied(ctx context.Context) ([]AppliedScript, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT SchemaVersionID, ScriptName, Applied
		 FROM main.SchemaVersions
		 ORDER BY SchemaVersionID`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying applied scripts: %w", err)
	}
	defer rows.Close()

	var applied []AppliedScript

	for rows.Next() {
		var (
			a   AppliedScript
			raw any
		)

		if err := rows.Scan(&a.ID, &a.ScriptName, &raw); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}

		at, err := parseApplied(raw)
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", a.ID, err)
		}

		a.AppliedAt = at
		applied = append(applied, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger rows: %w", err)
	}

	return applied, nil
}

// RecordApplied appends a ledger row for name. It fails with
// ErrDuplicateScript when name is already recorded.
func (t *Tracker) RecordApplied(ctx context.Context, name string, appliedAt time.Time) error {
	var exists bool

	err := t.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM main.SchemaVersions WHERE ScriptName = ?)`,
		name,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking ledger for %s: %w", name, err)
	}

	if exists {
		return fmt.Errorf("script %s: %w", name, ErrDuplicateScript)
	}

	_, err = t.q.ExecContext(ctx,
		`INSERT INTO SchemaVersions(ScriptName, Applied) VALUES (?, ?)`,
		name, appliedAt.UTC().Format(appliedLayout),
	)
	if err != nil {
		return fmt.Errorf("recording script %s as applied: %w", name, err)
	}

	return nil
}

// parseApplied accepts the Applied column as the driver hands it back: a
// time.Time when the driver parses DATETIME columns, text otherwise.
func parseApplied(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		return parseAppliedText(v)
	case []byte:
		return parseAppliedText(string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected Applied value of type %T", raw)
	}
}

func parseAppliedText(s string) (time.Time, error) {
	for _, layout := range []string{appliedLayout, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if at, err := time.Parse(layout, s); err == nil {
			return at.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("parsing Applied timestamp %q", s)
}
