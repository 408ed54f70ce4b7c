package report

import (
	"math"
	"strings"
	"testing"

	"autostat/pkg/records"
)

func rowsOf(vals ...string) []records.Record {
	out := make([]records.Record, len(vals))
	for i, v := range vals {
		out[i] = records.Record{"x": v}
	}
	return out
}

func TestValueCountsNormalized(t *testing.T) {
	counts := ValueCounts(rowsOf("a", "a", "b"), "x", CountOptions{Normalize: true, Sort: ByValue})
	if len(counts) != 2 {
		t.Fatalf("got %d buckets, want 2", len(counts))
	}
	if counts[0].Value != "a" || counts[0].N != 2 {
		t.Fatalf("bucket a = %+v", counts[0])
	}
	if math.Abs(counts[0].Share-2.0/3.0) > 1e-9 {
		t.Fatalf("share a = %v, want 2/3", counts[0].Share)
	}

	var sum float64
	for _, c := range counts {
		sum += c.Share
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("shares sum to %v, want 1.0", sum)
	}
}

func TestValueCountsSortByCount(t *testing.T) {
	counts := ValueCounts(rowsOf("b", "a", "b", "b", "a", "c"), "x", CountOptions{Sort: ByCount})
	want := []string{"b", "a", "c"}
	for i, c := range counts {
		if c.Value != want[i] {
			t.Fatalf("order = %v, want %v", counts, want)
		}
	}
}

func TestValueCountsMissingBucket(t *testing.T) {
	recs := []records.Record{{"x": "a"}, {"x": nil}, {}}
	counts := ValueCounts(recs, "x", CountOptions{Sort: ByCount})
	if counts[0].Value != Missing || counts[0].N != 2 {
		t.Fatalf("missing bucket = %+v", counts[0])
	}
}

func TestValueCountsTruncatesDates(t *testing.T) {
	recs := []records.Record{
		{"seen": "2016-03-05 14:25:00"},
		{"seen": "2016-03-05 18:30:10"},
		{"seen": "2016-03-06 09:00:00"},
	}
	counts := ValueCounts(recs, "seen", CountOptions{Sort: ByValue, Truncate: 10})
	if len(counts) != 2 {
		t.Fatalf("got %d buckets, want 2", len(counts))
	}
	if counts[0].Value != "2016-03-05" || counts[0].N != 2 {
		t.Fatalf("bucket = %+v", counts[0])
	}
}

func TestTopValues(t *testing.T) {
	recs := []records.Record{
		{"brand": "volkswagen"}, {"brand": "volkswagen"}, {"brand": "volkswagen"},
		{"brand": "bmw"}, {"brand": "bmw"},
		{"brand": "audi"},
	}
	top := TopValues(recs, "brand", 2)
	if len(top) != 2 || top[0].Value != "volkswagen" || top[1].Value != "bmw" {
		t.Fatalf("top = %v", top)
	}
}

func TestBrandStatsMeans(t *testing.T) {
	recs := []records.Record{
		{"brand": "bmw", "price": 10000, "odometer_km": 50000},
		{"brand": "bmw", "price": 20000, "odometer_km": 70000},
		{"brand": "audi", "price": 15000, "odometer_km": 60000},
	}
	stats := BrandStats(recs, []string{"bmw", "audi"})
	if len(stats) != 2 {
		t.Fatalf("got %d stats, want 2", len(stats))
	}
	for _, s := range stats {
		if math.Abs(s.MeanPrice-15000.0) > 1e-9 {
			t.Fatalf("%s mean price = %v, want 15000.0", s.Brand, s.MeanPrice)
		}
		if math.Abs(s.MeanMileage-60000.0) > 1e-9 {
			t.Fatalf("%s mean mileage = %v, want 60000.0", s.Brand, s.MeanMileage)
		}
	}
}

func TestBrandStatsOrderByMileageDesc(t *testing.T) {
	recs := []records.Record{
		{"brand": "opel", "price": 3000, "odometer_km": 120000},
		{"brand": "ford", "price": 4000, "odometer_km": 90000},
	}
	stats := BrandStats(recs, []string{"ford", "opel"})
	if stats[0].Brand != "opel" || stats[1].Brand != "ford" {
		t.Fatalf("order = %v, want mileage descending", stats)
	}
}

func TestMeanNoIntValues(t *testing.T) {
	if _, ok := Mean(rowsOf("a"), "x"); ok {
		t.Fatalf("Mean reported ok over non-int column")
	}
}

func TestBuildAndRender(t *testing.T) {
	recs := []records.Record{
		{"brand": "bmw", "price": 10000, "odometer_km": 50000, "date_crawled": "2016-03-05 14:25:00"},
		{"brand": "bmw", "price": 20000, "odometer_km": 70000, "date_crawled": "2016-03-06 11:00:00"},
		{"brand": "audi", "price": 15000, "odometer_km": 60000, "date_crawled": "2016-03-06 12:00:00"},
	}
	rep := Build(recs, Options{
		TopBrands:     2,
		CompareBrands: 2,
		DateColumns:   []string{"date_crawled"},
	})

	if rep.Rows != 3 {
		t.Fatalf("rows = %d, want 3", rep.Rows)
	}
	if len(rep.Brands) != 2 || rep.Brands[0].Value != "bmw" {
		t.Fatalf("brands = %v", rep.Brands)
	}
	if len(rep.Compared) != 2 {
		t.Fatalf("compared = %v", rep.Compared)
	}

	var sb strings.Builder
	if err := rep.Render(&sb); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"cleaned listings: 3 rows", "2016-03-06", "top 2 brands", "mean_mileage", "bmw"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered report missing %q:\n%s", want, out)
		}
	}
}
