package store

import (
	"embed"

	"github.com/tffedibot/fedibot/internal/migration"
)

const (
	// Namespace prefixes every resource identifier in the embedded bundle.
	Namespace = "fedibot.store"
	// MigrationsPrefix selects the store's own migration scripts.
	MigrationsPrefix = Namespace + ".Migrations"
)

//go:embed Migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the migration bundle compiled into the binary.
func Migrations() *migration.Bundle {
	return migration.NewBundle(migrationFiles, Namespace)
}
