package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// IsUniqueViolation reports whether err is a unique-constraint violation
// from any of the supported drivers.  Repositories use it to turn slug
// collisions into a conflict error instead of a generic database error.
func IsUniqueViolation(err error) bool {
	var my *mysql.MySQLError
	if errors.As(err, &my) {
		return my.Number == 1062
	}
	var sq sqlite3.Error
	if errors.As(err, &sq) {
		return sq.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sq.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}
	return false
}
