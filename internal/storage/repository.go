// Package storage contains storage-agnostic contracts for the optional
// cleaned-table sink, plus a small factory so the run layer never imports
// database drivers directly. Backends register themselves at init time
// (import autostat/internal/storage/all for the full set).
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the registered backend ("sqlite", "postgres").
	Kind string

	// DSN is the backend connection string.
	DSN string

	// Table is the destination table name.
	Table string

	// Columns is the ordered destination column list.
	Columns []string

	// AutoCreateTable creates the table from the cleaned schema before the
	// first insert.
	AutoCreateTable bool
}

// Repository is the minimal sink contract used by the run layer.
type Repository interface {
	// EnsureTable creates the destination table when the backend was
	// configured with AutoCreateTable; otherwise it is a no-op.
	EnsureTable(ctx context.Context) error

	// CopyFrom bulk-inserts rows aligned to the columns order and returns
	// the number of rows inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Close releases the underlying connection resources.
	Close() error
}

// Factory constructs a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind. It is typically
// called from backend packages' init() functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New constructs the Repository for cfg.Kind, or an error naming the known
// kinds when no backend is registered under that name.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind %q (known: %v)", cfg.Kind, knownKinds())
	}
	return f(ctx, cfg)
}

func knownKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
