package export

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/pacman"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TIMESTAMP NOT NULL,
    operation TEXT NOT NULL,
    package TEXT NOT NULL,
    old_version TEXT,
    new_version TEXT
);

CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
CREATE INDEX IF NOT EXISTS idx_events_package ON events(package);
`

// SQLiteWriter writes the event sequence into a SQLite database at the
// destination path, one row per event. The database is an export
// artifact for ad-hoc querying, not operational state: every run
// recreates the events table from scratch.
type SQLiteWriter struct{}

// Name implements Writer.
func (w *SQLiteWriter) Name() string { return "sqlite" }

// Write implements Writer.
func (w *SQLiteWriter) Write(events []pacman.Event, dest string) error {
	db, err := sql.Open("sqlite", dest)
	if err != nil {
		return fmt.Errorf("opening export database %s: %w", dest, err)
	}
	defer db.Close()

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`DROP TABLE IF EXISTS events`); err != nil {
		return fmt.Errorf("resetting export database %s: %w", dest, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating export schema in %s: %w", dest, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting export transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO events (timestamp, operation, package, old_version, new_version)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing export insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err := stmt.Exec(
			ev.Timestamp.Format(time.RFC3339),
			string(ev.Operation),
			ev.Package,
			ev.OldVersion,
			ev.NewVersion,
		)
		if err != nil {
			return fmt.Errorf("inserting event for %s: %w", ev.Package, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export transaction: %w", err)
	}
	return nil
}
