package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"autostat/pkg/records"
)

// DefaultBatchSize bounds rows per CopyFrom call when the config leaves
// batch_size unset.
const DefaultBatchSize = 5000

// WriteRecords persists recs through repo in column order, batching by
// batchSize (<= 0 uses DefaultBatchSize). It returns the total rows the
// backend reported inserted and the first error encountered; a failed batch
// aborts the remainder.
//
// Progress is logged per flushed batch with a running rows/sec figure.
func WriteRecords(
	ctx context.Context,
	repo Repository,
	columns []string,
	recs []records.Record,
	batchSize int,
) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("storage: no columns configured")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var (
		total   int64
		batches int64
		start   = time.Now()
	)

	for lo := 0; lo < len(recs); lo += batchSize {
		hi := lo + batchSize
		if hi > len(recs) {
			hi = len(recs)
		}

		rows := make([][]any, 0, hi-lo)
		for _, rec := range recs[lo:hi] {
			row := make([]any, len(columns))
			for j, c := range columns {
				row[j] = rec[c]
			}
			rows = append(rows, row)
		}

		n, err := repo.CopyFrom(ctx, columns, rows)
		total += n
		if err != nil {
			log.Printf("loader: insert failed after=%d total=%d err=%v", n, total, err)
			return total, err
		}

		batches++
		elapsed := time.Since(start)
		rps := float64(0)
		if elapsed > 0 {
			rps = float64(total) / elapsed.Seconds()
		}
		log.Printf("batch #%d: inserted=%d total_inserted=%d rps=%.0f elapsed=%s",
			batches, n, total, rps, elapsed.Truncate(time.Millisecond))
	}

	return total, nil
}
