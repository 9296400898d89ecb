package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vestbyenif/volunteer-api/internal/family"
)

// SQLiteDialect backs small single-node deployments and every DB-backed
// test in this repository.
type SQLiteDialect struct{}

// NewSQLiteDialect returns the SQLite dialect.
func NewSQLiteDialect() *SQLiteDialect { return &SQLiteDialect{} }

// DriverName returns "sqlite3".
func (d *SQLiteDialect) DriverName() string { return "sqlite3" }

// DSN appends _fk=1 so every pooled connection enforces the cascade
// foreign keys the family tables rely on.
func (d *SQLiteDialect) DSN(cfg DialectConfig) string {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	return "file:" + path + "?_fk=1"
}

// RewriteQuery is the identity; SQLite accepts ? placeholders.
func (d *SQLiteDialect) RewriteQuery(query string) string { return query }

// ConfigureConnection pins the pool to one connection.  SQLite serializes
// writers anyway, and with in-memory databases a second connection would
// see a different database entirely.
func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	return nil
}

// ListTablesQuery enumerates user tables from sqlite_master.
func (d *SQLiteDialect) ListTablesQuery() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
}

// CreateFamilyStatements returns the family DDL.  SQLite's flexible
// typing keeps the column list aligned with the MySQL schema: TEXT ids,
// ISO date/time strings, integer-backed booleans.
func (d *SQLiteDialect) CreateFamilyStatements(t family.TableSet) []string {
	events := fmt.Sprintf(`CREATE TABLE %s (
		id TEXT NOT NULL PRIMARY KEY,
		friendly_name TEXT,
		slug TEXT UNIQUE,
		event_date TEXT,
		image_url TEXT,
		event_description TEXT,
		event_longdescription TEXT,
		title TEXT,
		short_description TEXT,
		description TEXT,
		needed_volunteers INTEGER,
		date TEXT,
		is_hidden INTEGER NOT NULL DEFAULT 0,
		address TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`, t.Events())

	slots := fmt.Sprintf(`CREATE TABLE %s (
		id TEXT NOT NULL PRIMARY KEY,
		task_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
		start_time TEXT,
		end_time TEXT,
		max_volunteers INTEGER NOT NULL,
		current_volunteers INTEGER NOT NULL DEFAULT 0
	)`, t.TimeSlots(), t.Events())

	signups := fmt.Sprintf(`CREATE TABLE %s (
		id TEXT NOT NULL PRIMARY KEY,
		time_slot_id TEXT REFERENCES %s(id) ON DELETE CASCADE,
		task_id TEXT REFERENCES %s(id) ON DELETE CASCADE,
		name TEXT,
		email TEXT,
		phone TEXT,
		comment TEXT,
		is_parent INTEGER NOT NULL DEFAULT 0,
		child_name TEXT,
		team_name TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`, t.Signups(), t.TimeSlots(), t.Events())

	return []string{events, slots, signups}
}
