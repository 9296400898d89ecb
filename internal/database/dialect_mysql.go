package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/vestbyenif/volunteer-api/internal/family"
)

// MySQLDialect is the default production backend.
type MySQLDialect struct{}

// NewMySQLDialect returns the MySQL dialect.
func NewMySQLDialect() *MySQLDialect { return &MySQLDialect{} }

// DriverName returns "mysql".
func (d *MySQLDialect) DriverName() string { return "mysql" }

// DSN builds the MySQL connection string.
// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
func (d *MySQLDialect) DSN(cfg DialectConfig) string {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Name)
}

// RewriteQuery is the identity; MySQL uses ? placeholders natively.
func (d *MySQLDialect) RewriteQuery(query string) string { return query }

// ConfigureConnection applies pool settings.
func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)
	return nil
}

// ListTablesQuery enumerates the tables of the connected schema.
func (d *MySQLDialect) ListTablesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE()`
}

// CreateFamilyStatements returns the family DDL.  Row ids are CHAR(36)
// UUIDs generated by the application, never AUTO_INCREMENT, so migrating
// rows between families can assign fresh ids without coordination.
func (d *MySQLDialect) CreateFamilyStatements(t family.TableSet) []string {
	events := fmt.Sprintf(`CREATE TABLE %s (
		id CHAR(36) NOT NULL PRIMARY KEY,
		friendly_name TEXT,
		slug VARCHAR(255) UNIQUE,
		event_date DATE,
		image_url TEXT,
		event_description TEXT,
		event_longdescription TEXT,
		title TEXT,
		short_description TEXT,
		description TEXT,
		needed_volunteers INT,
		date DATE,
		is_hidden BOOLEAN NOT NULL DEFAULT FALSE,
		address TEXT,
		sort_order BIGINT NOT NULL DEFAULT 0
	) ENGINE=InnoDB`, t.Events())

	slots := fmt.Sprintf(`CREATE TABLE %s (
		id CHAR(36) NOT NULL PRIMARY KEY,
		task_id CHAR(36) NOT NULL,
		start_time TIME,
		end_time TIME,
		max_volunteers INT NOT NULL,
		current_volunteers INT NOT NULL DEFAULT 0,
		CONSTRAINT fk_%s_task FOREIGN KEY (task_id) REFERENCES %s(id) ON DELETE CASCADE
	) ENGINE=InnoDB`, t.TimeSlots(), t.TimeSlots(), t.Events())

	signups := fmt.Sprintf(`CREATE TABLE %s (
		id CHAR(36) NOT NULL PRIMARY KEY,
		time_slot_id CHAR(36),
		task_id CHAR(36),
		name TEXT,
		email TEXT,
		phone TEXT,
		comment TEXT,
		is_parent BOOLEAN NOT NULL DEFAULT FALSE,
		child_name TEXT,
		team_name TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_%s_slot FOREIGN KEY (time_slot_id) REFERENCES %s(id) ON DELETE CASCADE,
		CONSTRAINT fk_%s_task FOREIGN KEY (task_id) REFERENCES %s(id) ON DELETE CASCADE
	) ENGINE=InnoDB`, t.Signups(), t.Signups(), t.TimeSlots(), t.Signups(), t.Events())

	return []string{events, slots, signups}
}
