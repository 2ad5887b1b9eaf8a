package tracker

import "errors"

// ErrTableCreation indicates the SchemaVersions table could not be created.
var ErrTableCreation = errors.New("creating SchemaVersions table")

// ErrDuplicateScript indicates a script name is already recorded in the ledger.
var ErrDuplicateScript = errors.New("script already recorded in SchemaVersions")
