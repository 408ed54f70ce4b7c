package config

import (
	"encoding/json"
	"testing"
)

const samplePipeline = `{
  "source": { "kind": "file", "file": { "path": "autos.csv" } },
  "parser": {
    "kind": "csv",
    "options": {
      "has_header": true,
      "trim_space": true,
      "strict": true,
      "encoding": "latin-1",
      "expected_fields": 20,
      "header_map": { "dateCrawled": "date_crawled", "powerPS": "power_ps" }
    }
  },
  "transform": [
    { "kind": "drop", "options": { "fields": ["seller", "offer_type", "num_photos"] } },
    { "kind": "range", "options": { "field": "price", "min": 1, "max": 351000 } }
  ],
  "report": {
    "top_brands": 20,
    "compare_brands": 5,
    "date_columns": ["date_crawled", "ad_created", "last_seen"]
  },
  "storage": { "kind": "none" }
}`

func TestDecodePipeline(t *testing.T) {
	var p Pipeline
	if err := json.Unmarshal([]byte(samplePipeline), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if p.Source.Kind != "file" || p.Source.File.Path != "autos.csv" {
		t.Fatalf("source mismatch: %+v", p.Source)
	}
	if p.Parser.Kind != "csv" {
		t.Fatalf("parser kind = %q, want csv", p.Parser.Kind)
	}
	if got := p.Parser.Options.Int("expected_fields", 0); got != 20 {
		t.Fatalf("expected_fields = %d, want 20", got)
	}
	if !p.Parser.Options.Bool("strict", false) {
		t.Fatalf("strict not decoded")
	}
	hm := p.Parser.Options.StringMap("header_map")
	if hm["powerPS"] != "power_ps" {
		t.Fatalf("header_map not decoded: %v", hm)
	}
	if len(p.Transform) != 2 {
		t.Fatalf("transform count = %d, want 2", len(p.Transform))
	}
	if got := p.Transform[1].Options.Int("max", 0); got != 351000 {
		t.Fatalf("range max = %d, want 351000", got)
	}
	if p.Report.TopBrands != 20 || p.Report.CompareBrands != 5 {
		t.Fatalf("report mismatch: %+v", p.Report)
	}
}

func TestOptionsNullAndMissing(t *testing.T) {
	var p Parser
	if err := json.Unmarshal([]byte(`{"kind":"csv","options":null}`), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Options == nil {
		t.Fatalf("null options decoded to nil map; want empty map")
	}

	// A fully absent key leaves the zero value; getters must still work.
	var q Parser
	if err := json.Unmarshal([]byte(`{"kind":"csv"}`), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := q.Options.String("encoding", "utf-8"); got != "utf-8" {
		t.Fatalf("default lookup = %q, want utf-8", got)
	}
}

func TestOptionsTypedGetters(t *testing.T) {
	o := Options{
		"comma":  ";",
		"n":      float64(42),
		"flag":   true,
		"fields": []any{"a", "b", 3},
	}

	if got := o.Rune("comma", ','); got != ';' {
		t.Fatalf("Rune = %q, want ';'", got)
	}
	if got := o.Int("n", 0); got != 42 {
		t.Fatalf("Int = %d, want 42", got)
	}
	if !o.Bool("flag", false) {
		t.Fatalf("Bool lookup failed")
	}
	fields := o.StringSlice("fields")
	if len(fields) != 2 || fields[0] != "a" || fields[1] != "b" {
		t.Fatalf("StringSlice = %v, want [a b]", fields)
	}
	if got := o.String("missing", "def"); got != "def" {
		t.Fatalf("String default = %q, want def", got)
	}
}
