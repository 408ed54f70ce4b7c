package builtin

import (
	"fmt"

	"autostat/pkg/records"
)

// RangeFilter keeps only records whose integer Field lies in [Min, Max]
// inclusive. Surviving records are not mutated, so applying the same filter
// twice removes nothing the second time. Dropped rows are discarded silently;
// the pipeline reports counts only.
//
// The filter runs after coercion, so a non-int value here means the chain is
// mis-ordered and is reported as an error rather than treated as out of range.
type RangeFilter struct {
	Field string
	Min   int
	Max   int
}

func (f RangeFilter) Apply(in []records.Record) ([]records.Record, error) {
	out := in[:0]
	for i, r := range in {
		v, ok := r.Int(f.Field)
		if !ok {
			return nil, fmt.Errorf("range %s row %d: value %v is not an int (is the coerce step missing?)", f.Field, i+1, r[f.Field])
		}
		if v >= f.Min && v <= f.Max {
			out = append(out, r)
		}
	}
	return out, nil
}
