// Package postgres implements a Postgres-backed storage.Repository using pgx
// v5. Bulk inserts go through the COPY protocol, which is the fastest path
// for a one-shot table load.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autostat/internal/schema"
	"autostat/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  storage.Config
}

// NewRepository opens a pgx pool for the configured DSN.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	return &Repository{pool: pool, cfg: cfg}, nil
}

// EnsureTable creates the destination table from the cleaned listings schema
// when AutoCreateTable is set.
func (r *Repository) EnsureTable(ctx context.Context) error {
	if !r.cfg.AutoCreateTable {
		return nil
	}
	if _, err := r.pool.Exec(ctx, CreateTableSQL(r.cfg.Table, r.cfg.Columns)); err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	return nil
}

// CreateTableSQL renders CREATE TABLE IF NOT EXISTS for the given columns,
// typing them from the cleaned schema (bigint for coerced columns, text
// otherwise).
func CreateTableSQL(table string, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		typ := "text"
		if _, ok := schema.IntColumns[c]; ok {
			typ = "bigint"
		}
		defs[i] = fmt.Sprintf("%s %s", pgIdent(c), typ)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", pgFQN(table), strings.Join(defs, ", "))
}

// CopyFrom streams rows into the configured table via the COPY protocol and
// returns the number of rows the server reported copied.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	ident := pgx.Identifier(strings.Split(r.cfg.Table, "."))
	n, err := r.pool.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy: %w", err)
	}
	return n, nil
}

// Close releases the pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// pgIdent quotes a single identifier.
func pgIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// pgFQN quotes a possibly schema-qualified table name part by part.
func pgFQN(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}
