package database

import (
	"fmt"
	"strings"
)

// Dialect abstracts the SQL syntax differences between SQLite and
// PostgreSQL so the store can run on either backend.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Rebind converts a query written with ? placeholders to the
	// dialect's placeholder style.
	Rebind(query string) string

	// InitStatements returns statements run once after connecting.
	InitStatements() []string

	// IsDuplicateKeyError reports whether err is a unique constraint
	// violation.
	IsDuplicateKeyError(err error) bool

	// SerialPrimaryKey returns the column definition for an
	// auto-incrementing integer primary key.
	SerialPrimaryKey() string

	// CaseInsensitiveText returns the column type for text compared
	// case-insensitively.
	CaseInsensitiveText() string
}

// NewDialect returns the Dialect for a driver name. Unrecognized names fall
// back to SQLite.
func NewDialect(driver string) Dialect {
	if driver == "postgres" {
		return &PostgresDialect{}
	}
	return &SQLiteDialect{}
}

// SQLiteDialect implements Dialect for the modernc.org/sqlite driver.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string { return "sqlite" }

// Rebind is a no-op: SQLite uses ? placeholders natively.
func (d *SQLiteDialect) Rebind(query string) string { return query }

func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

func (d *SQLiteDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (d *SQLiteDialect) SerialPrimaryKey() string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d *SQLiteDialect) CaseInsensitiveText() string {
	return "TEXT COLLATE NOCASE"
}

// PostgresDialect implements Dialect for the lib/pq driver.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string { return "postgres" }

// Rebind converts ? placeholders to $1, $2, and so on.
func (d *PostgresDialect) Rebind(query string) string {
	var result strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(fmt.Sprintf("$%d", position))
			position++
		} else {
			result.WriteByte(query[i])
		}
	}
	return result.String()
}

func (d *PostgresDialect) InitStatements() []string {
	return []string{
		// citext backs case-insensitive usernames.
		"CREATE EXTENSION IF NOT EXISTS citext",
	}
}

func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// 23505 is unique_violation
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "unique constraint")
}

func (d *PostgresDialect) SerialPrimaryKey() string {
	return "BIGSERIAL PRIMARY KEY"
}

func (d *PostgresDialect) CaseInsensitiveText() string {
	return "CITEXT"
}
