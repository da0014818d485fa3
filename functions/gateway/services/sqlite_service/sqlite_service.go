package sqlite_service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

// SqliteService is the single-file backend used for local development and
// tests. The handle must be opened with one connection (see
// transport.OpenSQLite): that connection is what serializes ledger writers.
type SqliteService struct {
	DB *sqlx.DB
}

func NewSqliteService(db *sqlx.DB) *SqliteService {
	return &SqliteService{DB: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	last_name TEXT NOT NULL,
	full_name TEXT NOT NULL DEFAULT '',
	membership_number TEXT NOT NULL UNIQUE,
	gender TEXT NOT NULL DEFAULT '',
	tennis_competency_level TEXT NOT NULL CHECK (tennis_competency_level IN ('Beginner', 'Intermediate', 'Advanced')),
	status TEXT NOT NULL DEFAULT 'Active',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	membership_type TEXT NOT NULL DEFAULT '',
	join_date TEXT NOT NULL DEFAULT '',
	expiry_date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS admins (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	start_time INTEGER NOT NULL,
	end_time INTEGER NOT NULL,
	level_required TEXT NOT NULL CHECK (level_required IN ('Beginner', 'Intermediate', 'Advanced', 'All Levels')),
	capacity INTEGER NOT NULL CHECK (capacity > 0),
	UNIQUE (title, start_time),
	CHECK (end_time > start_time)
);

CREATE TABLE IF NOT EXISTS registrations (
	user_id INTEGER NOT NULL REFERENCES users(id),
	event_id INTEGER NOT NULL REFERENCES events(id),
	status TEXT NOT NULL CHECK (status IN ('confirmed', 'waitlist', 'withdrawn')),
	waitlisted_at INTEGER,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (user_id, event_id)
);

CREATE INDEX IF NOT EXISTS registrations_event_status_idx
	ON registrations (event_id, status, waitlisted_at);
`

// InitSchema creates the tables if they are missing.
func (s *SqliteService) InitSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize sqlite schema: %w", err)
	}
	return nil
}

func (s *SqliteService) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", types.ErrTransient, err)
	}
	return nil
}

func (s *SqliteService) Close() error {
	return s.DB.Close()
}

// Times are stored as unix nanoseconds so FIFO ordering never ties on a
// coarse clock.
func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %w", types.ErrConstraintViolation, err)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", types.ErrTransient, err)
		}
	}
	return err
}
