// Package file implements a local filesystem-backed data source.
//
// The listings dataset is a single delimited file on disk; this source is the
// only way bytes enter the pipeline.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a filesystem data source bound to a single file path.
type Local struct{ path string }

// NewLocal returns a Local data source for path. The value is safe for
// concurrent use as long as the underlying file is valid for concurrent reads.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading.
//
// If ctx is already canceled, Open returns the context error without touching
// the filesystem. Filesystem errors are wrapped with the path while still
// permitting errors.Is checks (e.g., errors.Is(err, os.ErrNotExist)).
// Directories are rejected: a dataset must be a regular file.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	fi, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("open %s: is a directory, want a delimited file", l.path)
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
