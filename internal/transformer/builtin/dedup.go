package builtin

import (
	"fmt"
	"sort"

	"github.com/zeebo/xxh3"

	"autostat/pkg/records"
)

// DeDup collapses records sharing the same business key. Crawled classifieds
// occasionally contain the same ad twice (re-crawl between runs); the key is
// the concatenation of the configured fields, hashed with xxh3 so the winners
// map stays cheap on wide keys.
//
// Policies:
//
//   - "keep-first" (default): keep the earliest occurrence in input order
//   - "keep-last":            keep the latest occurrence
//
// Records missing any key field fall outside the de-dup domain and pass
// through untouched. Run DeDup after Normalize so key values are in a stable
// form.
type DeDup struct {
	Keys   []string
	Policy string
}

type slot struct {
	rec   records.Record
	index int
}

func (d DeDup) Apply(in []records.Record) ([]records.Record, error) {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in, nil
	}

	keepLast := false
	switch d.Policy {
	case "", "keep-first":
	case "keep-last":
		keepLast = true
	default:
		return nil, fmt.Errorf("dedup: unknown policy %q", d.Policy)
	}

	winners := make(map[uint64]slot, len(in))
	var passthrough []slot

	for i, r := range in {
		h, ok := d.keyOf(r)
		if !ok {
			passthrough = append(passthrough, slot{rec: r, index: i})
			continue
		}
		if _, seen := winners[h]; !seen || keepLast {
			winners[h] = slot{rec: r, index: i}
		}
	}

	// Reassemble in original input order.
	out := make([]slot, 0, len(winners)+len(passthrough))
	for _, s := range winners {
		out = append(out, s)
	}
	out = append(out, passthrough...)
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })

	res := make([]records.Record, len(out))
	for i, s := range out {
		res[i] = s.rec
	}
	return res, nil
}

// keyOf hashes the key fields with a NUL separator so adjacent fields cannot
// alias ("ab","c" vs "a","bc").
func (d DeDup) keyOf(r records.Record) (uint64, bool) {
	h := xxh3.New()
	for _, k := range d.Keys {
		v, ok := r[k]
		if !ok || v == nil {
			return 0, false
		}
		fmt.Fprintf(h, "%v\x00", v)
	}
	return h.Sum64(), true
}
