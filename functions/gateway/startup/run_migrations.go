package startup

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Migration represents a database migration file
type Migration struct {
	Sequence int
	Filename string
	FullPath string
	Content  string
}

const createSchemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	filename TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrator applies *.sql files from Dir to the database at ConnString.
type Migrator struct {
	ConnString string
	Dir        string
	MaxRetries int
	RetryDelay time.Duration
}

func NewMigrator(connString, dir string) *Migrator {
	return &Migrator{
		ConnString: connString,
		Dir:        dir,
		MaxRetries: 10,
		RetryDelay: 2 * time.Second,
	}
}

// Run applies every migration not yet recorded in schema_migrations.
func (m *Migrator) Run(ctx context.Context) error {
	log.Println("Starting database migrations...")

	if _, err := os.Stat(m.Dir); os.IsNotExist(err) {
		log.Printf("No migrations directory found at %s", m.Dir)
		return nil
	}

	migrations, err := discoverMigrations(m.Dir)
	if err != nil {
		return fmt.Errorf("failed to discover migrations: %w", err)
	}

	if len(migrations) == 0 {
		log.Println("No migration files found")
		return nil
	}

	log.Printf("Found %d migration(s):", len(migrations))
	for _, migration := range migrations {
		log.Printf("   - %s", migration.Filename)
	}

	db, err := m.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := runMigrations(ctx, db, migrations); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("All migrations completed successfully!")
	return nil
}

func discoverMigrations(migrationsDir string) ([]Migration, error) {
	var migrations []Migration

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		// "001_description.sql" -> 1
		var sequence int
		parts := strings.Split(file.Name(), "_")
		if _, err := fmt.Sscanf(parts[0], "%d", &sequence); err != nil {
			log.Printf("Skipping migration with invalid sequence number: %s", file.Name())
			continue
		}

		fullPath := filepath.Join(migrationsDir, file.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Sequence: sequence,
			Filename: file.Name(),
			FullPath: fullPath,
			Content:  string(content),
		})
	}

	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Sequence < migrations[j].Sequence
	})

	return migrations, nil
}

func (m *Migrator) connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", m.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	for i := 0; i < m.MaxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()

		if err == nil {
			log.Println("Connected to database successfully")
			return db, nil
		}

		log.Printf("Failed to ping database (attempt %d/%d): %v", i+1, m.MaxRetries, err)
		if i < m.MaxRetries-1 {
			select {
			case <-ctx.Done():
				db.Close()
				return nil, ctx.Err()
			case <-time.After(m.RetryDelay):
			}
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", m.MaxRetries, err)
}

// runMigrations applies each pending file in its own transaction together
// with its schema_migrations row.
func runMigrations(ctx context.Context, db *sql.DB, migrations []Migration) error {
	if _, err := db.ExecContext(ctx, createSchemaMigrations); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return err
	}

	for _, migration := range pendingMigrations(migrations, applied) {
		log.Printf("Running migration: %s", migration.Filename)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migration.Content); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to run migration %s: %w", migration.Filename, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, migration.Filename); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", migration.Filename, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", migration.Filename, err)
		}

		log.Printf("Migration %s completed successfully", migration.Filename)
	}

	return nil
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func pendingMigrations(migrations []Migration, applied map[string]bool) []Migration {
	var pending []Migration
	for _, migration := range migrations {
		if !applied[migration.Filename] {
			pending = append(pending, migration)
		}
	}
	return pending
}
