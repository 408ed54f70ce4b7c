// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. It performs batched INSERTs inside a transaction; SQLite has
// no dedicated bulk-load API, but transactions keep performance acceptable
// for a 50k-row listings table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"autostat/internal/schema"
	"autostat/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg storage.Config
}

// NewRepository opens a SQLite connection using the provided DSN.
//
// The DSN is passed directly to database/sql; for example:
//
//	"file:autos.db?cache=shared"
//	"autos.db"
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Repository{db: db, cfg: cfg}, nil
}

// EnsureTable creates the destination table from the cleaned listings schema
// when AutoCreateTable is set.
func (r *Repository) EnsureTable(ctx context.Context) error {
	if !r.cfg.AutoCreateTable {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, CreateTableSQL(r.cfg.Table, r.cfg.Columns)); err != nil {
		return fmt.Errorf("sqlite: create table: %w", err)
	}
	return nil
}

// CreateTableSQL renders CREATE TABLE IF NOT EXISTS for the given columns,
// typing them from the cleaned schema (INTEGER for coerced columns, TEXT
// otherwise).
func CreateTableSQL(table string, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		typ := "TEXT"
		if _, ok := schema.IntColumns[c]; ok {
			typ = "INTEGER"
		}
		defs[i] = fmt.Sprintf("%s %s", c, typ)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
}

// CopyFrom inserts the given rows into the configured table using a single
// transaction and a prepared INSERT statement. len(row) must equal
// len(columns) for every row.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		r.cfg.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error { return r.db.Close() }
