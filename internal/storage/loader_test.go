package storage

import (
	"context"
	"errors"
	"testing"

	"autostat/pkg/records"
)

type fakeRepo struct {
	batches [][][]any
	cols    []string
	failOn  int // 1-based batch index to fail on; 0 = never
}

func (f *fakeRepo) EnsureTable(context.Context) error { return nil }

func (f *fakeRepo) CopyFrom(_ context.Context, columns []string, rows [][]any) (int64, error) {
	f.cols = columns
	f.batches = append(f.batches, rows)
	if f.failOn > 0 && len(f.batches) == f.failOn {
		return 0, errors.New("copy failed")
	}
	return int64(len(rows)), nil
}

func (f *fakeRepo) Close() error { return nil }

func someRecords(n int) []records.Record {
	out := make([]records.Record, n)
	for i := range out {
		out[i] = records.Record{"brand": "bmw", "price": i}
	}
	return out
}

func TestWriteRecordsBatches(t *testing.T) {
	repo := &fakeRepo{}
	total, err := WriteRecords(context.Background(), repo, []string{"brand", "price"}, someRecords(5), 2)
	if err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(repo.batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(repo.batches))
	}
	if len(repo.batches[2]) != 1 {
		t.Fatalf("final batch = %d rows, want 1", len(repo.batches[2]))
	}
	// Row values follow the column order.
	if repo.batches[0][1][0] != "bmw" || repo.batches[0][1][1] != 1 {
		t.Fatalf("row misaligned: %v", repo.batches[0][1])
	}
}

func TestWriteRecordsAbortsOnError(t *testing.T) {
	repo := &fakeRepo{failOn: 2}
	total, err := WriteRecords(context.Background(), repo, []string{"brand"}, someRecords(6), 2)
	if err == nil {
		t.Fatalf("expected copy error")
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2 (first batch only)", total)
	}
	if len(repo.batches) != 2 {
		t.Fatalf("continued after failure: %d batches", len(repo.batches))
	}
}

func TestWriteRecordsNoColumns(t *testing.T) {
	if _, err := WriteRecords(context.Background(), &fakeRepo{}, nil, someRecords(1), 10); err == nil {
		t.Fatalf("expected error for empty column list")
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New(context.Background(), Config{Kind: "bolt"}); err == nil {
		t.Fatalf("expected error for unregistered kind")
	}
}

func TestRegisterAndNew(t *testing.T) {
	repo := &fakeRepo{}
	Register("fake", func(context.Context, Config) (Repository, error) { return repo, nil })

	got, err := New(context.Background(), Config{Kind: "fake"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got != Repository(repo) {
		t.Fatalf("factory not used")
	}
}
