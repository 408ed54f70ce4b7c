// Package transformer defines the cleaning chain applied to parsed records.
//
// Transforms either rewrite records in place (normalize, coerce), shrink the
// record (drop), or select a subset of rows (range, dedup). A transform that
// cannot honor its contract returns an error, which aborts the whole run;
// there is no row-level recovery.
package transformer

import "autostat/pkg/records"

type Transformer interface {
	Apply(in []records.Record) ([]records.Record, error)
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) ([]records.Record, error) {
	out := in
	var err error
	for _, t := range c {
		if out, err = t.Apply(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
