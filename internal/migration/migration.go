package migration

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gemdash/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the diamonds table and its filter indexes
type MigrationRunner struct {
	version string
	table   string
}

// NewRunner creates a new migration runner for table
func NewRunner(table string) *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		table:   table,
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if r.table == "" {
		return errors.InvalidInput("migration table name is empty")
	}

	if _, err := db.ExecContext(ctx, CreateTableQuery(r.table)); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to create %s table", r.table))
	}

	for _, q := range IndexQueries(r.table) {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return errors.Wrap(err, "failed to create indexes")
		}
	}
	return nil
}

// CreateTableQuery returns the DDL for a diamonds table
func CreateTableQuery(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		carat DOUBLE PRECISION NOT NULL,
		cut TEXT NOT NULL,
		color TEXT NOT NULL,
		clarity TEXT NOT NULL,
		depth DOUBLE PRECISION NOT NULL DEFAULT 0,
		"table" DOUBLE PRECISION NOT NULL DEFAULT 0,
		price INTEGER NOT NULL,
		x DOUBLE PRECISION NOT NULL DEFAULT 0,
		y DOUBLE PRECISION NOT NULL DEFAULT 0,
		z DOUBLE PRECISION NOT NULL DEFAULT 0
	)`, pq.QuoteIdentifier(table))
}

// IndexQueries returns one index per filter column
func IndexQueries(table string) []string {
	cols := []string{"cut", "color", "clarity"}
	queries := make([]string, len(cols))
	for i, col := range cols {
		queries[i] = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`,
			pq.QuoteIdentifier("idx_"+table+"_"+col), pq.QuoteIdentifier(table), col)
	}
	return queries
}
