package report

import (
	"fmt"
	"io"

	"autostat/pkg/records"
)

// Options configures which summaries Build computes.
type Options struct {
	// TopBrands is the length of the brand frequency ranking (0 disables it).
	TopBrands int

	// CompareBrands is how many leading brands get the mean-price /
	// mean-mileage table (0 disables it).
	CompareBrands int

	// DateColumns are date-time string columns summarized at calendar-date
	// granularity (first 10 characters).
	DateColumns []string

	// FrequencyColumns are categorical columns summarized as normalized
	// distributions.
	FrequencyColumns []string
}

// Report is the assembled set of summaries for one cleaned table.
type Report struct {
	Rows      int
	DateDists []NamedDist
	FreqDists []NamedDist
	Brands    []Count
	Compared  []BrandStat
}

// NamedDist pairs a column name with its distribution.
type NamedDist struct {
	Column string
	Counts []Count
}

// Build computes every configured summary over the cleaned table.
func Build(recs []records.Record, opt Options) *Report {
	rep := &Report{Rows: len(recs)}

	for _, col := range opt.DateColumns {
		rep.DateDists = append(rep.DateDists, NamedDist{
			Column: col,
			Counts: ValueCounts(recs, col, CountOptions{Normalize: true, Sort: ByValue, Truncate: 10}),
		})
	}
	for _, col := range opt.FrequencyColumns {
		rep.FreqDists = append(rep.FreqDists, NamedDist{
			Column: col,
			Counts: ValueCounts(recs, col, CountOptions{Normalize: true, Sort: ByCount}),
		})
	}

	if opt.TopBrands > 0 {
		rep.Brands = TopValues(recs, "brand", opt.TopBrands)
	}
	if opt.CompareBrands > 0 {
		top := TopValues(recs, "brand", opt.CompareBrands)
		brands := make([]string, len(top))
		for i, c := range top {
			brands[i] = c.Value
		}
		rep.Compared = BrandStats(recs, brands)
	}

	return rep
}

// Render writes the report as plain text tables.
func (r *Report) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "cleaned listings: %d rows\n", r.Rows); err != nil {
		return err
	}

	for _, d := range r.DateDists {
		fmt.Fprintf(w, "\n%s (by calendar date)\n", d.Column)
		renderDist(w, d.Counts)
	}
	for _, d := range r.FreqDists {
		fmt.Fprintf(w, "\n%s\n", d.Column)
		renderDist(w, d.Counts)
	}

	if len(r.Brands) > 0 {
		fmt.Fprintf(w, "\ntop %d brands by listings\n", len(r.Brands))
		for i, c := range r.Brands {
			fmt.Fprintf(w, "  %2d. %-24s %6d\n", i+1, c.Value, c.N)
		}
	}

	if len(r.Compared) > 0 {
		fmt.Fprintf(w, "\nbrand comparison (mean mileage, mean price)\n")
		fmt.Fprintf(w, "  %-24s %12s %12s %8s\n", "brand", "mean_mileage", "mean_price", "ads")
		for _, s := range r.Compared {
			fmt.Fprintf(w, "  %-24s %12.1f %12.1f %8d\n", s.Brand, s.MeanMileage, s.MeanPrice, s.Listings)
		}
	}

	return nil
}

func renderDist(w io.Writer, counts []Count) {
	for _, c := range counts {
		if c.Share > 0 {
			fmt.Fprintf(w, "  %-24s %6d  %6.4f\n", c.Value, c.N, c.Share)
		} else {
			fmt.Fprintf(w, "  %-24s %6d\n", c.Value, c.N)
		}
	}
}
