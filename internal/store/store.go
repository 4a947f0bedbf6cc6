// Package store implements data access over a shared *sql.DB connection pool.
// Each entity gets its own accessor with literal SQL; table names are never
// interpolated from caller input.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"depot-rest-api/internal/errs"
)

// Open connects to MySQL and configures the bounded connection pool. The pool
// is the process's only shared mutable resource; concurrency beyond its size
// queues for a connection.
func Open(dsn string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// MySQL error numbers for duplicate keys and foreign key failures.
const (
	mysqlErrDupEntry      = 1062
	mysqlErrRowIsRef      = 1451
	mysqlErrNoRefRow      = 1452
	mysqlErrNoRefRowStmt  = 1216
	mysqlErrRowIsRefsStmt = 1217
)

// wrapConstraint converts a driver-level uniqueness or foreign key failure
// into ErrConstraintViolation so handlers can map it without knowing the
// backing engine.
func wrapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDupEntry, mysqlErrRowIsRef, mysqlErrNoRefRow,
			mysqlErrNoRefRowStmt, mysqlErrRowIsRefsStmt:
			return fmt.Errorf("%w: %v", errs.ErrConstraintViolation, err)
		}
	}
	// SQLite reports every constraint class with this word in the message.
	if strings.Contains(err.Error(), "constraint") {
		return fmt.Errorf("%w: %v", errs.ErrConstraintViolation, err)
	}
	return err
}
