// migrate-to-postgres copies a SQLite world database into PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/samud.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user samud \
//	    -pg-password samud \
//	    -pg-database samud
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/riverwalkmud/samud/internal/database"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/samud.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "samud", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "samud", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "samud", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	sqliteDB, err := sql.Open("sqlite", *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer sqliteDB.Close()

	if err := sqliteDB.Ping(); err != nil {
		log.Fatalf("Failed to connect to SQLite database: %v", err)
	}

	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = *pgHost
	pgCfg.Port = *pgPort
	pgCfg.User = *pgUser
	pgCfg.Password = *pgPassword
	pgCfg.Database = *pgDatabase
	pgCfg.SSLMode = *pgSSLMode

	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	pgDB, err := sql.Open("postgres", pgCfg.DSN())
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer pgDB.Close()

	if err := pgDB.Ping(); err != nil {
		log.Fatalf("Failed to connect to PostgreSQL database: %v", err)
	}

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	// Let the server's own migration code build the postgres schema, so the
	// two paths can never drift apart.
	if !*dryRun {
		target, err := database.Open(database.Config{
			Driver:   "postgres",
			Postgres: pgCfg,
		})
		if err != nil {
			log.Fatalf("Failed to prepare PostgreSQL schema: %v", err)
		}
		target.Close()
	}

	tables := []struct {
		name    string
		migrate func(*sql.DB, *sql.DB, bool) (int64, error)
	}{
		{"accounts", migrateAccounts},
		{"rooms", migrateRooms},
		{"npcs", migrateNPCs},
		{"items", migrateItems},
	}

	var totalRows int64
	for _, t := range tables {
		log.Printf("Migrating table: %s", t.name)
		count, err := t.migrate(sqliteDB, pgDB, *dryRun)
		if err != nil {
			log.Fatalf("Failed to migrate %s: %v", t.name, err)
		}
		log.Printf("  Migrated %d rows", count)
		totalRows += count
	}

	log.Println("====================================")
	log.Printf("Migration complete! Total rows migrated: %d", totalRows)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}

func migrateAccounts(src, dst *sql.DB, dryRun bool) (int64, error) {
	rows, err := src.Query(`SELECT username, password_hash, current_room, created_at, last_login FROM accounts`)
	if err != nil {
		return 0, fmt.Errorf("query sqlite accounts: %w", err)
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var username, passwordHash, currentRoom string
		var createdAt sql.NullTime
		var lastLogin sql.NullTime
		if err := rows.Scan(&username, &passwordHash, &currentRoom, &createdAt, &lastLogin); err != nil {
			return count, err
		}
		count++
		if dryRun {
			continue
		}
		_, err := dst.Exec(
			`INSERT INTO accounts (username, password_hash, current_room, created_at, last_login)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (username) DO UPDATE SET
			   password_hash = EXCLUDED.password_hash,
			   current_room = EXCLUDED.current_room,
			   last_login = EXCLUDED.last_login`,
			username, passwordHash, currentRoom, createdAt, lastLogin)
		if err != nil {
			return count, fmt.Errorf("insert account %q: %w", username, err)
		}
	}
	return count, rows.Err()
}

func migrateRooms(src, dst *sql.DB, dryRun bool) (int64, error) {
	rows, err := src.Query(`SELECT id, name, description, exits, exit_order FROM rooms`)
	if err != nil {
		return 0, fmt.Errorf("query sqlite rooms: %w", err)
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, name, description, exits, exitOrder string
		if err := rows.Scan(&id, &name, &description, &exits, &exitOrder); err != nil {
			return count, err
		}
		count++
		if dryRun {
			continue
		}
		_, err := dst.Exec(
			`INSERT INTO rooms (id, name, description, exits, exit_order)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   exits = EXCLUDED.exits,
			   exit_order = EXCLUDED.exit_order`,
			id, name, description, exits, exitOrder)
		if err != nil {
			return count, fmt.Errorf("insert room %q: %w", id, err)
		}
	}
	return count, rows.Err()
}

func migrateNPCs(src, dst *sql.DB, dryRun bool) (int64, error) {
	rows, err := src.Query(`SELECT id, name, description, room_id, responses FROM npcs`)
	if err != nil {
		return 0, fmt.Errorf("query sqlite npcs: %w", err)
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, name, description, roomID, responses string
		if err := rows.Scan(&id, &name, &description, &roomID, &responses); err != nil {
			return count, err
		}
		count++
		if dryRun {
			continue
		}
		_, err := dst.Exec(
			`INSERT INTO npcs (id, name, description, room_id, responses)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   room_id = EXCLUDED.room_id,
			   responses = EXCLUDED.responses`,
			id, name, description, roomID, responses)
		if err != nil {
			return count, fmt.Errorf("insert npc %q: %w", id, err)
		}
	}
	return count, rows.Err()
}

func migrateItems(src, dst *sql.DB, dryRun bool) (int64, error) {
	rows, err := src.Query(`SELECT id, name, description, location_type, location_id FROM items`)
	if err != nil {
		return 0, fmt.Errorf("query sqlite items: %w", err)
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, name, description, locationType, locationID string
		if err := rows.Scan(&id, &name, &description, &locationType, &locationID); err != nil {
			return count, err
		}
		count++
		if dryRun {
			continue
		}
		// Item locations carry player inventories, so they always win over
		// whatever the target row says.
		_, err := dst.Exec(
			`INSERT INTO items (id, name, description, location_type, location_id)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   location_type = EXCLUDED.location_type,
			   location_id = EXCLUDED.location_id`,
			id, name, description, locationType, locationID)
		if err != nil {
			return count, fmt.Errorf("insert item %q: %w", id, err)
		}
	}
	return count, rows.Err()
}
