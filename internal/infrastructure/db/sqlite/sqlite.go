// Package sqlite is the persistence gateway. It owns the relational schema
// and implements the repository ports on a bun.DB over modernc's pure-Go
// SQLite driver. All cross-request coordination is expressed here as atomic
// statements: unique-key inserts, single-statement upserts and conditional
// deletes. Nothing above this package holds shared mutable state.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

// timeLayout is the text format used for every stored timestamp. It matches
// SQLite's datetime() output, which is what existing databases contain, and
// compares correctly as text.
const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS users (
    userName TEXT NOT NULL UNIQUE,
    salt     TEXT NOT NULL,
    hash     TEXT NOT NULL,
    PRIMARY KEY(userName)
);

CREATE TABLE IF NOT EXISTS sessions (
    sessionID    TEXT NOT NULL UNIQUE,
    expiresAfter TEXT NOT NULL,
    userName     TEXT NOT NULL,
    PRIMARY KEY(sessionID)
);

CREATE TABLE IF NOT EXISTS polls (
    pollID        INTEGER PRIMARY KEY AUTOINCREMENT,
    title         TEXT NOT NULL,
    description   TEXT NOT NULL,
    creator       TEXT NOT NULL,
    creatorsNotes TEXT,
    creationDate  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS votes (
    pollID   INTEGER NOT NULL,
    userName TEXT NOT NULL,
    votedYes INTEGER NOT NULL,
    PRIMARY KEY(pollID, userName)
);
`

// Open connects to the SQLite database at path, applies the schema, and
// returns a bun.DB ready for the repositories. Use ":memory:" in tests.
func Open(path string) (*bun.DB, error) {
	dsn := path
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)", path)
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// An in-memory database exists per connection; keep exactly one.
		sqlDB.SetMaxOpenConns(1)
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}
