package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tffedibot/fedibot/internal/database"
)

// GCMessage is a raw game coordinator message as received by the session.
type GCMessage struct {
	Protobuf bool
	MsgType  uint32
	Data     []byte
}

// Notification is a display notification after formatting.
type Notification struct {
	ID         int64
	RunID      int64
	ReceivedAt time.Time
	Title      string            // Title localization key
	Body       string            // Body localization key
	Substrings map[string]string // Placeholder values keyed by placeholder name
	Formatted  string
}

type notificationRow struct {
	ID         int64  `db:"Id"`
	ReceivedAt string `db:"ReceivedAt"`
	RunID      int64  `db:"ReceivedOnRun"`
	Title      string `db:"Title"`
	Body       string `db:"Body"`
	Substring  string `db:"Substring"`
	Formatted  string `db:"Formatted"`
}

type guardRow struct {
	UserName string `db:"UserName"`
	Data     string `db:"Data"`
}

// CreateRun records the start of a program run and returns its id.
func (s *Store) CreateRun(ctx context.Context) (int64, error) {
	query, args, err := sq.Insert("ProgramRun").
		Columns("StartedAt").
		Values(s.now()).
		Suffix("RETURNING Id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := s.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("creating program run: %w", err)
	}

	s.log.WithField("run", id).Info("program run started")

	return id, nil
}

// GuardData returns the stored Steam guard data for username. Guard data
// stored for a different account is deleted and reported as absent.
func (s *Store) GuardData(ctx context.Context, username string) (string, bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit returns sql.ErrTxDone

	var row guardRow

	err = tx.GetContext(ctx, &row, "SELECT UserName, Data FROM StoredGuardData LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("reading guard data: %w", err)
	}

	if row.UserName != username {
		if _, err := tx.ExecContext(ctx, "DELETE FROM StoredGuardData"); err != nil {
			return "", false, fmt.Errorf("clearing guard data: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return "", false, fmt.Errorf("committing transaction: %w", err)
		}

		s.log.WithField("stored_for", row.UserName).Info("discarded guard data of another account")

		return "", false, nil
	}

	s.log.Info("retrieved stored guard data")

	return strings.TrimSpace(row.Data), true, nil
}

// SaveGuardData stores data as the only guard data, replacing whatever was stored.
func (s *Store) SaveGuardData(ctx context.Context, username, data string) error {
	query, args, err := sq.Insert("StoredGuardData").
		Options("OR REPLACE").
		Columns("UserName", "Data").
		Values(username, data).
		ToSql()
	if err != nil {
		return err
	}

	return database.ExecInTransaction(ctx, s.db.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM StoredGuardData WHERE UserName <> ?", username); err != nil {
			return fmt.Errorf("clearing guard data: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("saving guard data: %w", err)
		}

		return nil
	})
}

// RecordGCMessage stores a received game coordinator message under runID.
func (s *Store) RecordGCMessage(ctx context.Context, runID int64, msg GCMessage) (int64, error) {
	data := msg.Data
	if data == nil {
		data = []byte{}
	}

	query, args, err := sq.Insert("ReceivedGCMessage").
		Columns("ReceivedAt", "ReceivedOnRun", "Protobuf", "MsgType", "Data").
		Values(s.now(), runID, msg.Protobuf, msg.MsgType, data).
		Suffix("RETURNING Id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := s.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("recording GC message %d: %w", msg.MsgType, err)
	}

	return id, nil
}

// RecordNotification stores a formatted notification. RunID, Title, Body,
// Substrings and Formatted are taken from n; the id and receive time are
// assigned by the store and returned in the copy.
func (s *Store) RecordNotification(ctx context.Context, n Notification) (*Notification, error) {
	substrings := n.Substrings
	if substrings == nil {
		substrings = map[string]string{}
	}

	encoded, err := json.Marshal(substrings)
	if err != nil {
		return nil, fmt.Errorf("encoding substrings: %w", err)
	}

	receivedAt := s.now()

	query, args, err := sq.Insert("ReceivedNotification").
		Columns("ReceivedAt", "ReceivedOnRun", "Title", "Body", "Substring", "Formatted").
		Values(receivedAt, n.RunID, n.Title, n.Body, string(encoded), n.Formatted).
		Suffix("RETURNING Id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var id int64
	if err := s.db.GetContext(ctx, &id, query, args...); err != nil {
		return nil, fmt.Errorf("recording notification: %w", err)
	}

	out := n
	out.ID = id
	out.Substrings = substrings
	out.ReceivedAt, _ = time.Parse(timeLayout, receivedAt)

	return &out, nil
}

// Notifications lists the notifications received during runID, oldest first.
func (s *Store) Notifications(ctx context.Context, runID int64) ([]Notification, error) {
	query, args, err := sq.Select(
		"Id", "CAST(ReceivedAt AS TEXT) AS ReceivedAt", "ReceivedOnRun",
		"Title", "Body", "Substring", "Formatted",
	).
		From("ReceivedNotification").
		Where(sq.Eq{"ReceivedOnRun": runID}).
		OrderBy("Id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []notificationRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	out := make([]Notification, 0, len(rows))

	for _, r := range rows {
		n := Notification{
			ID:        r.ID,
			RunID:     r.RunID,
			Title:     r.Title,
			Body:      r.Body,
			Formatted: r.Formatted,
		}

		if n.ReceivedAt, err = time.Parse(timeLayout, r.ReceivedAt); err != nil {
			return nil, fmt.Errorf("parsing receive time of notification %d: %w", r.ID, err)
		}

		if err := json.Unmarshal([]byte(r.Substring), &n.Substrings); err != nil {
			return nil, fmt.Errorf("decoding substrings of notification %d: %w", r.ID, err)
		}

		out = append(out, n)
	}

	return out, nil
}
