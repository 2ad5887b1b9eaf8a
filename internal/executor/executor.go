package executor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tffedibot/fedibot/internal/database"
	"github.com/tffedibot/fedibot/internal/migration"
	"github.com/tffedibot/fedibot/internal/tracker"
)

// Progress status constants reported via ProgressEvent.
const (
	StatusStarting  = "starting"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// ProgressEvent is emitted by the executor for each pending script processed.
type ProgressEvent struct {
	Script   *migration.Script
	Status   string
	Duration time.Duration
	Error    error
}

// TxBeginner opens the enclosing transaction. *sql.DB and *sql.Conn satisfy it.
type TxBeginner = database.TxBeginner

// Ledger abstracts the SchemaVersions operations for testability.
type Ledger interface {
	EnsureTable(ctx context.Context) error
	ListApplied(ctx context.Context) (map[string]struct{}, error)
	RecordApplied(ctx context.Context, name string, appliedAt time.Time) error
}

// ledgerFunc binds a Ledger to the enclosing transaction.
type ledgerFunc func(q tracker.Querier) Ledger

// scriptExecFunc executes a single script's body.
type scriptExecFunc func(ctx context.Context, tx *sql.Tx, s *migration.Script) error

// Executor applies pending migration scripts from a Source. It holds no state
// between runs; every run works only on the connection it is handed.
type Executor struct {
	source     migration.Source
	logger     *logrus.Entry
	clock      func() time.Time
	metrics    *Metrics
	dryRun     bool
	onProgress func(ProgressEvent)
	newLedger  ledgerFunc
	execScript scriptExecFunc
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for run progress.
func WithLogger(l *logrus.Entry) Option {
	return func(e *Executor) { e.logger = l }
}

// WithClock sets the time source used for the ledger's Applied column.
func WithClock(fn func() time.Time) Option {
	return func(e *Executor) { e.clock = fn }
}

// WithMetrics records run outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// WithDryRun enables dry-run mode where pending scripts are reported but
// nothing is executed or recorded.
func WithDryRun(b bool) Option {
	return func(e *Executor) { e.dryRun = b }
}

// WithProgressCallback sets a function called for each pending script.
func WithProgressCallback(fn func(ProgressEvent)) Option {
	return func(e *Executor) { e.onProgress = fn }
}

// New creates an Executor reading scripts from source.
func New(source migration.Source, opts ...Option) *Executor {
	e := &Executor{
		source: source,
	}

	for _, opt := range opts {
		opt(e)
	}

	// Set defaults for injectable functions after options are applied,
	// so tests can override them.
	if e.logger == nil {
		e.logger = logrus.NewEntry(logrus.StandardLogger())
	}

	if e.clock == nil {
		e.clock = time.Now
	}

	if e.newLedger == nil {
		e.newLedger = func(q tracker.Querier) Ledger { return tracker.New(q) }
	}

	if e.execScript == nil {
		e.execScript = executeScript
	}

	return e
}

// Migrate applies every script under prefix that is not yet in the ledger, in
// lexical name order, inside one enclosing transaction with a savepoint per
// script.
//
// A script that fails is rolled back to its savepoint and stops the run; the
// failure is reported on the Result, not as an error. The enclosing
// transaction is committed either way, so scripts applied before the failure
// stay recorded and the next run resumes at the failing script. The returned
// error is non-nil only when the run could not operate on the store at all.
func (e *Executor) Migrate(ctx context.Context, db TxBeginner, prefix string) (*Result, error) {
	log := e.logger.WithField("prefix", prefix)
	log.Info("migrating")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBeginTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit returns sql.ErrTxDone

	ledger := e.newLedger(tx)

	pending, err := e.pending(ctx, ledger, prefix)
	if err != nil {
		return nil, err
	}

	result := &Result{Prefix: prefix, Pending: names(pending), DryRun: e.dryRun}

	if e.dryRun {
		for i := range pending {
			e.fireProgress(ProgressEvent{Script: &pending[i], Status: StatusSkipped})
		}

		log.WithField("pending", len(pending)).Info("dry run, rolling back")

		return result, nil
	}

	for i := range pending {
		failure, err := e.applyOne(ctx, tx, ledger, &pending[i])
		if err != nil {
			return nil, err
		}

		if failure != nil {
			result.Failure = failure

			break
		}

		result.Applied = append(result.Applied, pending[i].Name)
	}

	log.WithField("applied", len(result.Applied)).Info("committing migrations")

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitTransaction, err)
	}

	return result, nil
}

// Plan returns the scripts Migrate would apply, without changing the store.
func (e *Executor) Plan(ctx context.Context, db TxBeginner, prefix string) ([]migration.Script, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBeginTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // plan never commits

	return e.pending(ctx, e.newLedger(tx), prefix)
}

// pending ensures the ledger exists and diffs the discovered scripts against it.
func (e *Executor) pending(ctx context.Context, ledger Ledger, prefix string) ([]migration.Script, error) {
	if err := ledger.EnsureTable(ctx); err != nil {
		return nil, err
	}

	discovered, err := e.source.Scripts(prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	applied, err := ledger.ListApplied(ctx)
	if err != nil {
		return nil, err
	}

	return migration.Pending(discovered, applied), nil
}

// applyOne runs a single script inside its own savepoint and records it in the
// ledger. Script and ledger failures come back as a Failure after the
// savepoint is rolled back; the error return is reserved for savepoint
// handling itself breaking down.
func (e *Executor) applyOne(ctx context.Context, tx *sql.Tx, ledger Ledger, s *migration.Script) (*Failure, error) {
	log := e.logger.WithField("script", s.Name)
	log.Info("applying migration")

	if err := database.Savepoint(ctx, tx, s.Name); err != nil {
		return nil, err
	}

	e.fireProgress(ProgressEvent{Script: s, Status: StatusStarting})

	start := time.Now()
	stepErr := e.execScript(ctx, tx, s)

	if stepErr == nil {
		stepErr = ledger.RecordApplied(ctx, s.Name, e.clock())
	}

	duration := time.Since(start)

	if stepErr != nil {
		log.WithError(stepErr).Error("migration failed, rolling back")

		if err := database.RollbackToSavepoint(ctx, tx, s.Name); err != nil {
			return nil, err
		}

		e.metrics.observeFailure()
		e.fireProgress(ProgressEvent{Script: s, Status: StatusFailed, Duration: duration, Error: stepErr})

		return &Failure{Script: s.Name, Err: stepErr}, nil
	}

	if err := database.ReleaseSavepoint(ctx, tx, s.Name); err != nil {
		return nil, err
	}

	e.metrics.observeApplied(duration)
	e.fireProgress(ProgressEvent{Script: s, Status: StatusCompleted, Duration: duration})

	return nil, nil //nolint:nilnil // nil Failure means the script applied
}

func executeScript(ctx context.Context, tx *sql.Tx, s *migration.Script) error {
	if _, err := tx.ExecContext(ctx, s.Body); err != nil {
		return fmt.Errorf("executing script: %w", err)
	}

	return nil
}

func (e *Executor) fireProgress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}

func names(scripts []migration.Script) []string {
	ns := make([]string, len(scripts))
	for i, s := range scripts {
		ns[i] = s.Name
	}

	return ns
}
