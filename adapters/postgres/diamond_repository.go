package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gemdash/domain/diamond"
	"gemdash/internal/errors"
	"gemdash/internal/migration"
)

// DefaultTable holds the diamonds sample when no table is configured
const DefaultTable = "diamonds"

// Open connects to Postgres and verifies the connection
func Open(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to postgres", err)
	}
	return db, nil
}

// DiamondRepository reads and seeds the diamonds table
type DiamondRepository struct {
	db    *sqlx.DB
	table string
}

// NewDiamondRepository creates a repository over the given table
func NewDiamondRepository(db *sqlx.DB, table string) *DiamondRepository {
	if table == "" {
		table = DefaultTable
	}
	return &DiamondRepository{db: db, table: table}
}

// Name identifies the source in logs and metrics
func (r *DiamondRepository) Name() string {
	return "postgres:" + r.table
}

// Load reads every row in insertion order
func (r *DiamondRepository) Load(ctx context.Context) (*diamond.Dataset, error) {
	var rows []diamond.Diamond
	if err := r.db.SelectContext(ctx, &rows, selectQuery(r.table)); err != nil {
		return nil, errors.DatasetUnavailable(r.Name(), err)
	}
	if len(rows) == 0 {
		return nil, errors.DatasetInvalid(fmt.Sprintf("table %s has no rows", r.table))
	}
	return diamond.NewDataset(rows), nil
}

// CreateTable creates the diamonds table and its indexes if missing
func (r *DiamondRepository) CreateTable(ctx context.Context) error {
	if err := migration.NewRunner(r.table).Run(ctx, r.db); err != nil {
		return errors.DatabaseError(fmt.Sprintf("failed to create table %s", r.table), err)
	}
	return nil
}

// Seed replaces the table contents with rows using COPY
func (r *DiamondRepository) Seed(ctx context.Context, rows []diamond.Diamond) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE "+pq.QuoteIdentifier(r.table)+" RESTART IDENTITY"); err != nil {
		return errors.DatabaseError(fmt.Sprintf("failed to truncate %s", r.table), err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(r.table, diamond.Columns...))
	if err != nil {
		return errors.DatabaseError("failed to prepare copy", err)
	}
	for _, d := range rows {
		if _, err := stmt.ExecContext(ctx, d.Carat, d.Cut, d.Color, d.Clarity, d.Depth, d.Table, d.Price, d.X, d.Y, d.Z); err != nil {
			stmt.Close()
			return errors.DatabaseError("failed to copy row", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return errors.DatabaseError("failed to flush copy", err)
	}
	if err := stmt.Close(); err != nil {
		return errors.DatabaseError("failed to close copy", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit seed", err)
	}
	return nil
}

func quotedColumns() string {
	cols := make([]string, len(diamond.Columns))
	for i, c := range diamond.Columns {
		cols[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(cols, ", ")
}

func selectQuery(table string) string {
	return fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, quotedColumns(), pq.QuoteIdentifier(table))
}
