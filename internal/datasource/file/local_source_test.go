package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalOpenReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "autos.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rc, err := NewLocal(path).Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "a,b\n1,2\n" {
		t.Fatalf("content = %q", b)
	}
}

func TestLocalOpenMissingFile(t *testing.T) {
	_, err := NewLocal(filepath.Join(t.TempDir(), "nope.csv")).Open(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error should wrap os.ErrNotExist: %v", err)
	}
}

func TestLocalOpenRejectsDirectory(t *testing.T) {
	_, err := NewLocal(t.TempDir()).Open(context.Background())
	if err == nil {
		t.Fatalf("expected error for directory")
	}
}

func TestLocalOpenCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocal("irrelevant").Open(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
