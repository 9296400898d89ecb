package database

import (
	"database/sql"
	"regexp"
	"strconv"

	"github.com/vestbyenif/volunteer-api/internal/family"
)

// Dialect abstracts the per-backend differences the service has to care
// about: connection strings, placeholder syntax, catalog introspection
// and the DDL used to provision an event family's table trio.  Everything
// else is plain portable SQL issued through the DB/Tx wrappers.
type Dialect interface {
	// DriverName returns the name registered with database/sql.
	DriverName() string

	// DSN builds the data source name from the relevant config fields.
	DSN(cfg DialectConfig) string

	// RewriteQuery converts ? placeholders when the backend needs a
	// different syntax (Postgres $1, $2, ...).
	RewriteQuery(query string) string

	// ConfigureConnection applies pool settings and per-backend pragmas.
	ConfigureConnection(db *sql.DB) error

	// ListTablesQuery returns a query yielding one row per table in the
	// current schema with the table name as its single column.
	ListTablesQuery() string

	// CreateFamilyStatements returns the three CREATE TABLE statements
	// for a family, in dependency order: events, then timeslots, then
	// signups.  Foreign keys cascade on delete so removing a task also
	// removes its slots and their signups.
	CreateFamilyStatements(t family.TableSet) []string
}

// DialectConfig carries the union of connection parameters.  MySQL uses
// the discrete fields, SQLite uses Path, Postgres uses URL.
type DialectConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string

	Path string
	URL  string
}

var placeholderPattern = regexp.MustCompile(`\?`)

// rewriteToNumbered converts ? placeholders to $1, $2, ... for backends
// with numbered parameters.
func rewriteToNumbered(query string) string {
	n := 0
	return placeholderPattern.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}
