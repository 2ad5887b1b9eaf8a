package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/tffedibot/fedibot/internal/database"
	"github.com/tffedibot/fedibot/internal/executor"
	"github.com/tffedibot/fedibot/internal/migration"
	"github.com/tffedibot/fedibot/internal/tracker"
)

// timeLayout matches SQLite's datetime('now') text format.
const timeLayout = "2006-01-02 15:04:05"

// Store is the bot's persistent state in a single SQLite file.
type Store struct {
	db      *sqlx.DB
	log     *logrus.Entry
	clock   clock.Clock
	metrics *executor.Metrics
	source  migration.Source
	prefix  string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for store and migration messages.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Store) { s.log = l }
}

// WithClock sets the time source for every timestamp the store writes.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithMetrics records migration outcomes on m.
func WithMetrics(m *executor.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithMigrations replaces the embedded bundle and prefix Start migrates from.
func WithMigrations(source migration.Source, prefix string) Option {
	return func(s *Store) {
		s.source = source
		s.prefix = prefix
	}
}

// Open opens the store at path. The schema is not touched until Start.
func Open(ctx context.Context, path string, busyTimeout time.Duration, opts ...Option) (*Store, error) {
	db, err := database.Open(ctx, path, busyTimeout)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:     sqlx.NewDb(db, database.DriverName),
		log:    logrus.WithField("component", "store"),
		clock:  clock.New(),
		source: Migrations(),
		prefix: MigrationsPrefix,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return ErrNotOpen
	}

	return s.db.Close()
}

// DB exposes the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

// Start brings the schema up to date. When a script fails, the scripts before
// it stay applied and the returned error wraps ErrMigrationFailed; the Result
// is returned in both cases. Extra executor options are applied after the
// store's own.
func (s *Store) Start(ctx context.Context, opts ...executor.Option) (*executor.Result, error) {
	base := []executor.Option{
		executor.WithLogger(s.log),
		executor.WithClock(s.clock.Now),
		executor.WithMetrics(s.metrics),
	}

	e := executor.New(s.source, append(base, opts...)...)

	result, err := e.Migrate(ctx, s.db.DB, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	if !result.Success() {
		return result, fmt.Errorf("%w: %w", ErrMigrationFailed, result.Failure)
	}

	s.log.WithField("applied", len(result.Applied)).Info("store is up to date")

	return result, nil
}

// Plan returns the scripts Start would apply.
func (s *Store) Plan(ctx context.Context) ([]migration.Script, error) {
	return executor.New(s.source, executor.WithLogger(s.log)).Plan(ctx, s.db.DB, s.prefix)
}

// Status compares the ledger with the migration source.
type Status struct {
	Applied []tracker.AppliedScript // In application order
	Pending []migration.Script      // In the order Start would apply them
	Missing []string                // Applied, but no longer in the source
}

// Status reports applied, pending and missing scripts without changing the store.
func (s *Store) Status(ctx context.Context) (*Status, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning status transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // status never commits

	t := tracker.New(tx)

	if err := t.EnsureTable(ctx); err != nil {
		return nil, err
	}

	applied, err := t.GetApplied(ctx)
	if err != nil {
		return nil, err
	}

	scripts, err := s.source.Scripts(s.prefix)
	if err != nil {
		return nil, fmt.Errorf("discovering migrations: %w", err)
	}

	appliedSet := make(map[string]struct{}, len(applied))
	for _, a := range applied {
		appliedSet[a.ScriptName] = struct{}{}
	}

	known := make(map[string]struct{}, len(scripts))
	for _, sc := range scripts {
		known[sc.Name] = struct{}{}
	}

	st := &Status{
		Applied: applied,
		Pending: migration.Pending(scripts, appliedSet),
	}

	for _, a := range applied {
		if _, ok := known[a.ScriptName]; !ok {
			st.Missing = append(st.Missing, a.ScriptName)
		}
	}

	return st, nil
}

func (s *Store) now() string {
	return s.clock.Now().UTC().Format(timeLayout)
}
