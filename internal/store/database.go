package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database represents the scoring PostgreSQL database connection
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase creates a new database connection
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

// migrations are applied in order and tracked in schema_migrations.
var migrations = []struct {
	version string
	sql     string
}{
	{
		version: "001_create_score_runs.sql",
		sql: `
			CREATE TABLE IF NOT EXISTS score_runs (
				id BIGSERIAL PRIMARY KEY,
				season INT NOT NULL,
				week INT NOT NULL,
				starters_only BOOLEAN NOT NULL DEFAULT TRUE,
				started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				completed_at TIMESTAMPTZ
			);
			CREATE INDEX IF NOT EXISTS idx_score_runs_season_week ON score_runs (season, week);
		`,
	},
	{
		version: "002_create_team_scores.sql",
		sql: `
			CREATE TABLE IF NOT EXISTS team_scores (
				id BIGSERIAL PRIMARY KEY,
				run_id BIGINT NOT NULL REFERENCES score_runs(id) ON DELETE CASCADE,
				team_name VARCHAR(100) NOT NULL,
				total NUMERIC(8,2) NOT NULL,
				UNIQUE (run_id, team_name)
			);
		`,
	},
	{
		version: "003_create_player_scores.sql",
		sql: `
			CREATE TABLE IF NOT EXISTS player_scores (
				id BIGSERIAL PRIMARY KEY,
				run_id BIGINT NOT NULL REFERENCES score_runs(id) ON DELETE CASCADE,
				team_name VARCHAR(100) NOT NULL,
				player_name VARCHAR(100) NOT NULL,
				matched_name VARCHAR(100),
				position VARCHAR(8) NOT NULL,
				nfl_team VARCHAR(8),
				is_starter BOOLEAN NOT NULL,
				found_in_stats BOOLEAN NOT NULL,
				total_points NUMERIC(8,2) NOT NULL,
				breakdown JSONB NOT NULL DEFAULT '[]',
				data_notes JSONB NOT NULL DEFAULT '[]'
			);
			CREATE INDEX IF NOT EXISTS idx_player_scores_run ON player_scores (run_id);
		`,
	},
}

// RunMigrations applies all pending schema migrations in order
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m.version, m.sql); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}

	log.Println("✓ All migrations completed successfully")

	return nil
}

// createMigrationsTable creates a table to track which migrations have been run
func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

// runMigration runs a single migration if it hasn't been applied yet
func (db *Database) runMigration(version, stmt string) error {
	// Check if already applied
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("  ⊘ Skipping %s (already applied)", version)
		return nil
	}

	// Execute migration in a transaction
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmt); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	// Record migration as applied
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", version)
	return nil
}

// HealthCheck performs a health check on the database
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
