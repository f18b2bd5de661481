package database

import (
	"database/sql"
	"fmt"
	"time"

	"hrslides/dbpool"
)

// Migration represents a database migration. Up and Down hold one statement
// per element; MySQL rejects multi-statement Exec calls.
type Migration struct {
	Version     int
	Description string
	Up          []string
	Down        []string
}

// GetMigrations returns all database migrations in order, rendered for the
// dialect's engine.
func GetMigrations(d *dbpool.Dialect) []Migration {
	opts := d.TableOptions()
	return []Migration{
		{
			Version:     1,
			Description: "Create deck_builds table",
			Up: []string{
				`CREATE TABLE deck_builds (
					id ` + d.KeyType(36) + ` PRIMARY KEY,
					created_at ` + d.TimestampType() + ` NOT NULL,
					plan_path TEXT NOT NULL,
					output TEXT NOT NULL,
					title TEXT NOT NULL,
					slides INTEGER NOT NULL,
					layouts TEXT NOT NULL,
					bytes BIGINT NOT NULL,
					duration_ms BIGINT NOT NULL,
					language ` + d.KeyType(16) + ` NOT NULL
				)` + opts,
				`CREATE INDEX idx_deck_builds_created ON deck_builds(created_at)`,
			},
			Down: []string{
				`DROP TABLE IF EXISTS deck_builds`,
			},
		},
		{
			Version:     2,
			Description: "Add handout and preview outputs to deck_builds",
			Up: []string{
				`ALTER TABLE deck_builds ADD COLUMN handout TEXT`,
				`ALTER TABLE deck_builds ADD COLUMN preview_dir TEXT`,
			},
			Down: []string{
				`ALTER TABLE deck_builds DROP COLUMN preview_dir`,
				`ALTER TABLE deck_builds DROP COLUMN handout`,
			},
		},
	}
}

// InitDB opens the history database through mgr and runs migrations.
func InitDB(mgr *dbpool.DBManager, opts dbpool.OpenOptions, logger func(string)) (*sql.DB, error) {
	if opts.Engine == "" {
		opts.Engine = mgr.DefaultEngine()
	}

	db, err := mgr.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db, dbpool.NewDialect(opts.Engine), logger); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema_migrations table if needed and applies every
// pending migration in its own transaction.
func Migrate(db *sql.DB, d *dbpool.Dialect, logger func(string)) error {
	if logger == nil {
		logger = func(string) {}
	}

	if err := createMigrationsTable(db, d); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	if err := runMigrations(db, d, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// createMigrationsTable creates the schema_migrations table to track applied migrations
func createMigrationsTable(db *sql.DB, d *dbpool.Dialect) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at ` + d.TimestampType() + ` NOT NULL
		)` + d.TableOptions()
	_, err := db.Exec(query)
	return err
}

// runMigrations applies all pending migrations
func runMigrations(db *sql.DB, d *dbpool.Dialect, logger func(string)) error {
	for _, migration := range GetMigrations(d) {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", migration.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check migration status for version %d: %w", migration.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		for _, stmt := range migration.Up {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to execute migration %d (%s): %w", migration.Version, migration.Description, err)
			}
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			migration.Version, migration.Description, time.Now().UTC()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		logger(fmt.Sprintf("[DB] Applied migration %d: %s", migration.Version, migration.Description))
	}

	return nil
}

// AppliedVersions lists the applied migration versions in ascending order.
func AppliedVersions(db *sql.DB) ([]int, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// RollbackMigration rolls back a specific migration
func RollbackMigration(db *sql.DB, d *dbpool.Dialect, version int) error {
	var target *Migration
	for _, m := range GetMigrations(d) {
		if m.Version == version {
			target = &m
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, stmt := range target.Down {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to rollback migration %d: %w", version, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", version); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove migration record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rollback: %w", err)
	}
	return nil
}
