// Package database provides the world store: durable accounts, rooms, NPCs,
// and items behind a small interface the engine consumes. SQLite is the
// default backend; PostgreSQL is selected by configuration.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database implements Store on top of database/sql with a Dialect.
type Database struct {
	db           *sql.DB
	dialect      Dialect
	startingRoom string
}

// Open connects to the configured backend and runs migrations.
func Open(cfg Config) (*Database, error) {
	dialect := NewDialect(cfg.Driver)

	var db *sql.DB
	var err error
	switch dialect.(type) {
	case *PostgresDialect:
		db, err = sql.Open(dialect.DriverName(), cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		if cfg.Postgres.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		}
		if cfg.Postgres.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		}
		if cfg.Postgres.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		}
	default:
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err = sql.Open(dialect.DriverName(), cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run init statement: %w", err)
		}
	}

	startingRoom := cfg.StartingRoom
	if startingRoom == "" {
		startingRoom = "alamo_plaza"
	}

	d := &Database{db: db, dialect: dialect, startingRoom: startingRoom}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS accounts (
			id %s,
			username %s UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			current_room TEXT NOT NULL DEFAULT 'alamo_plaza',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_login TIMESTAMP
		)`, d.dialect.SerialPrimaryKey(), d.dialect.CaseInsensitiveText()),

		`CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			exits TEXT NOT NULL DEFAULT '{}',
			exit_order TEXT NOT NULL DEFAULT '[]'
		)`,

		`CREATE TABLE IF NOT EXISTS npcs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			room_id TEXT NOT NULL REFERENCES rooms(id),
			responses TEXT NOT NULL DEFAULT '{}'
		)`,

		// items.location_id is a room ID or a username depending on
		// location_type, so it carries no foreign key.
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			location_type TEXT NOT NULL,
			location_id TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_accounts_current_room ON accounts(current_room)`,
		`CREATE INDEX IF NOT EXISTS idx_npcs_room_id ON npcs(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_location ON items(location_type, location_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// exec runs a statement after rebinding placeholders for the dialect.
func (d *Database) exec(query string, args ...any) (sql.Result, error) {
	return d.db.Exec(d.dialect.Rebind(query), args...)
}

// queryRow runs a single-row query after rebinding placeholders.
func (d *Database) queryRow(query string, args ...any) *sql.Row {
	return d.db.QueryRow(d.dialect.Rebind(query), args...)
}

// query runs a multi-row query after rebinding placeholders.
func (d *Database) query(query string, args ...any) (*sql.Rows, error) {
	return d.db.Query(d.dialect.Rebind(query), args...)
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}
