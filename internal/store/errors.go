package store

import "errors"

var (
	// ErrMigrationFailed indicates a migration script halted Start. Scripts
	// applied before it stay committed.
	ErrMigrationFailed = errors.New("store migration failed")

	// ErrNotOpen indicates an operation on a closed or zero Store.
	ErrNotOpen = errors.New("store is not open")
)
