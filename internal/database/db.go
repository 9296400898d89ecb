package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DB wraps the standard connection pool with the dialect it was opened
// against.  All queries go through the dialect's placeholder rewriting so
// repositories can be written once with ? placeholders and run unchanged
// on MySQL, SQLite and Postgres.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Queryer is the query surface shared by *DB and *Tx.  Repository helpers
// that must run both inside and outside a transaction accept this
// interface instead of a concrete handle.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Open connects using the named driver ("mysql", "sqlite" or "postgres"),
// applies dialect-specific connection settings and verifies the
// connection with a short ping.
func Open(driver string, cfg DialectConfig) (*DB, error) {
	var d Dialect
	switch strings.ToLower(driver) {
	case "mysql", "":
		d = NewMySQLDialect()
	case "sqlite", "sqlite3":
		d = NewSQLiteDialect()
	case "postgres", "postgresql":
		d = NewPostgresDialect()
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return OpenWith(d, cfg)
}

// OpenWith is Open for an already-chosen dialect.  Tests use it to open
// in-memory SQLite databases directly.
func OpenWith(d Dialect, cfg DialectConfig) (*DB, error) {
	sqlDB, err := sql.Open(d.DriverName(), d.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := d.ConfigureConnection(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("configure connection: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{DB: sqlDB, Dialect: d}, nil
}

// QueryContext executes a query after placeholder rewriting.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// QueryRowContext executes a single-row query after placeholder rewriting.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// ExecContext executes a statement after placeholder rewriting.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// BeginTx starts a transaction whose methods rewrite placeholders the
// same way the pool does.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, dialect: db.Dialect}, nil
}

// Tx is a dialect-aware transaction handle.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

// QueryContext executes a query inside the transaction.
func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.RewriteQuery(query), args...)
}

// QueryRowContext executes a single-row query inside the transaction.
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.RewriteQuery(query), args...)
}

// ExecContext executes a statement inside the transaction.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.RewriteQuery(query), args...)
}

// Commit commits the transaction.
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback aborts the transaction.
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// DropTableSQL builds the DROP statement used when a family is deleted.
// IF EXISTS keeps the operation idempotent on retry; all three supported
// backends accept the clause.
func DropTableSQL(table string) string {
	return "DROP TABLE IF EXISTS " + table
}
