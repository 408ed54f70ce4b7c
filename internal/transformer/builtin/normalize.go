// Package builtin contains the reusable transformers the cleaning chain is
// assembled from.
package builtin

import (
	"strings"

	"autostat/pkg/records"
)

// Normalize trims surrounding whitespace from every string value and folds
// non-breaking spaces (common in Latin-1 crawls) into plain spaces. Values
// trimmed down to nothing become nil so emptiness checks stay uniform across
// the pipeline.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
			if s == "" {
				r[k] = nil
			} else {
				r[k] = s
			}
		}
	}
	return in, nil
}
