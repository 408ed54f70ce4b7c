// Package report computes the read-only summaries printed at the end of a
// run: value distributions, the brand ranking, and the per-brand mean price /
// mean mileage comparison. Nothing here mutates the cleaned table; every
// summary is an independent, re-derivable view.
package report

import (
	"fmt"
	"sort"
	"strconv"

	"autostat/pkg/records"
)

// Missing is the sentinel under which nil values are counted in
// distributions, mirroring value counts that keep the null bucket.
const Missing = "(missing)"

// SortOrder selects how a distribution is ordered.
type SortOrder int

const (
	// ByValue orders rows by the column value (ascending lexicographic;
	// ISO-style dates sort chronologically this way).
	ByValue SortOrder = iota
	// ByCount orders rows by descending frequency.
	ByCount
)

// Count is one row of a frequency distribution.
type Count struct {
	Value string
	N     int
	Share float64 // fraction of total when normalized, else 0
}

// CountOptions configures ValueCounts.
type CountOptions struct {
	// Normalize fills Share with N/total.
	Normalize bool

	// Sort selects the output order.
	Sort SortOrder

	// Truncate keeps only the first Truncate characters of each value before
	// counting; 0 counts whole values. Used to reduce date-time strings to
	// calendar dates (first 10 characters).
	Truncate int
}

// ValueCounts computes the frequency distribution of col across recs. Nil
// values are counted under the Missing sentinel.
func ValueCounts(recs []records.Record, col string, opt CountOptions) []Count {
	counts := map[string]int{}
	for _, r := range recs {
		v := valueString(r[col])
		if opt.Truncate > 0 && v != Missing && len(v) > opt.Truncate {
			v = v[:opt.Truncate]
		}
		counts[v]++
	}

	out := make([]Count, 0, len(counts))
	for v, n := range counts {
		out = append(out, Count{Value: v, N: n})
	}

	switch opt.Sort {
	case ByCount:
		sort.Slice(out, func(i, j int) bool {
			if out[i].N != out[j].N {
				return out[i].N > out[j].N
			}
			return out[i].Value < out[j].Value
		})
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	}

	if opt.Normalize && len(recs) > 0 {
		total := float64(len(recs))
		for i := range out {
			out[i].Share = float64(out[i].N) / total
		}
	}
	return out
}

// TopValues returns the n most frequent values of col, most frequent first.
// n <= 0 returns the full ranking.
func TopValues(recs []records.Record, col string, n int) []Count {
	all := ValueCounts(recs, col, CountOptions{Sort: ByCount})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Mean averages the integer column col over recs. The second return is false
// when no row carries an int value for col.
func Mean(recs []records.Record, col string) (float64, bool) {
	var sum, n int
	for _, r := range recs {
		if v, ok := r.Int(col); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// BrandStat is one row of the brand comparison table.
type BrandStat struct {
	Brand       string
	Listings    int
	MeanPrice   float64
	MeanMileage float64
}

// BrandStats computes mean price and mean mileage restricted to each of the
// given brands. Rows come back ordered by descending mean mileage, the order
// the comparison table is traditionally read in.
func BrandStats(recs []records.Record, brands []string) []BrandStat {
	out := make([]BrandStat, 0, len(brands))
	for _, b := range brands {
		var sub []records.Record
		for _, r := range recs {
			if r.String("brand") == b {
				sub = append(sub, r)
			}
		}
		st := BrandStat{Brand: b, Listings: len(sub)}
		if mp, ok := Mean(sub, "price"); ok {
			st.MeanPrice = mp
		}
		if mm, ok := Mean(sub, "odometer_km"); ok {
			st.MeanMileage = mm
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MeanMileage > out[j].MeanMileage })
	return out
}

func valueString(v any) string {
	switch x := v.(type) {
	case nil:
		return Missing
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
