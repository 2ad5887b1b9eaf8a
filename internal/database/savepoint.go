package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Execer is satisfied by *sql.Tx, *sql.Conn and *sql.DB.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// QuoteIdentifier quotes name as an SQL identifier, doubling embedded quotes.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Savepoint opens a named savepoint inside the current transaction.
func Savepoint(ctx context.Context, ex Execer, name string) error {
	if _, err := ex.ExecContext(ctx, "SAVEPOINT "+QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("creating savepoint %s: %w", name, err)
	}

	return nil
}

// ReleaseSavepoint folds the savepoint's work into the enclosing transaction.
func ReleaseSavepoint(ctx context.Context, ex Execer, name string) error {
	if _, err := ex.ExecContext(ctx, "RELEASE SAVEPOINT "+QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("releasing savepoint %s: %w", name, err)
	}

	return nil
}

// RollbackToSavepoint undoes everything since the savepoint was opened and then
// releases it, leaving the enclosing transaction usable.
func RollbackToSavepoint(ctx context.Context, ex Execer, name string) error {
	if _, err := ex.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("rolling back to savepoint %s: %w", name, err)
	}

	return ReleaseSavepoint(ctx, ex, name)
}
