package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/vestbyenif/volunteer-api/internal/family"
)

// PostgresDialect targets hosted Postgres, where the original deployment
// of this system lived.
type PostgresDialect struct{}

// NewPostgresDialect returns the Postgres dialect.
func NewPostgresDialect() *PostgresDialect { return &PostgresDialect{} }

// DriverName returns "postgres".
func (d *PostgresDialect) DriverName() string { return "postgres" }

// DSN passes the configured URL straight through.
func (d *PostgresDialect) DSN(cfg DialectConfig) string { return cfg.URL }

// RewriteQuery converts ? placeholders to $1, $2, ...
func (d *PostgresDialect) RewriteQuery(query string) string {
	return rewriteToNumbered(query)
}

// ConfigureConnection applies pool settings.
func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)
	return nil
}

// ListTablesQuery enumerates public tables, the same catalog view the
// front end's get_public_tables RPC exposed.
func (d *PostgresDialect) ListTablesQuery() string {
	return `SELECT tablename FROM pg_tables WHERE schemaname = 'public'`
}

// CreateFamilyStatements returns the family DDL.
func (d *PostgresDialect) CreateFamilyStatements(t family.TableSet) []string {
	events := fmt.Sprintf(`CREATE TABLE %s (
		id TEXT NOT NULL PRIMARY KEY,
		friendly_name TEXT,
		slug TEXT UNIQUE,
		event_date DATE,
		image_url TEXT,
		event_description TEXT,
		event_longdescription TEXT,
		title TEXT,
		short_description TEXT,
		description TEXT,
		needed_volunteers INTEGER,
		date DATE,
		is_hidden BOOLEAN NOT NULL DEFAULT FALSE,
		address TEXT,
		sort_order BIGINT NOT NULL DEFAULT 0
	)`, t.Events())

	slots := fmt.Sprintf(`CREATE TABLE %s (
		id TEXT NOT NULL PRIMARY KEY,
		task_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
		start_time TIME,
		end_time TIME,
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
		is_parent BOOLEAN NOT NULL DEFAULT FALSE,
		child_name TEXT,
		team_name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, t.Signups(), t.TimeSlots(), t.Events())

	return []string{events, slots, signups}
}
