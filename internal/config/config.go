// Package config defines the canonical, JSON-serializable configuration model
// for the autostat pipeline. It is intentionally small, explicit, and
// dependency-free so that pipeline files can be loaded from disk and passed
// through the program without additional glue code.
//
// Example (trimmed):
//
//	{
//	  "source":   { "kind": "file", "file": { "path": "autos.csv" } },
//	  "parser":   { "kind": "csv", "options": { "has_header": true, "encoding": "latin-1" } },
//	  "transform":[
//	    { "kind": "range", "options": { "field": "price", "min": 1, "max": 351000 } }
//	  ],
//	  "report":   { "top_brands": 20, "compare_brands": 5 },
//	  "storage":  { "kind": "none" }
//	}
package config

import "encoding/json"

// Pipeline describes the full run in JSON. It is the top-level object decoded
// from a pipeline file (e.g., configs/autos.json).
type Pipeline struct {
	// Source describes where input data comes from (e.g., local file).
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into records.
	Parser Parser `json:"parser"`

	// Transform lists the ordered transformations applied to parsed records.
	// Each transform has a kind and an options bag. The options shape is
	// defined by the transform implementation.
	Transform []Transform `json:"transform"`

	// Report configures the aggregation summaries printed after cleaning.
	Report Report `json:"report"`

	// Storage describes an optional sink for the cleaned table.
	Storage Storage `json:"storage"`
}

// Source identifies the data source. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into logical rows/columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, typical keys include:
	//   has_header (bool), comma (string), trim_space (bool), strict (bool),
	//   expected_fields (int), encoding (string), header_map (object)
	Options Options `json:"options"`
}

// Transform defines a single transformation step. The sequence of steps forms
// the cleaning chain executed before aggregation.
type Transform struct {
	// Kind selects the transform implementation (e.g., "normalize", "drop",
	// "coerce", "range", "dedup"). Implementations define their own options.
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the selected transform.
	Options Options `json:"options"`
}

// Report configures the printed summaries.
type Report struct {
	// TopBrands is the length of the brand frequency ranking (default 20).
	TopBrands int `json:"top_brands"`

	// CompareBrands is how many leading brands get the mean-price /
	// mean-mileage comparison table (default 5).
	CompareBrands int `json:"compare_brands"`

	// DateColumns lists date-time string columns whose calendar-date
	// distribution is printed (values truncated to 10 characters first).
	DateColumns []string `json:"date_columns"`

	// FrequencyColumns lists categorical columns whose normalized value
	// distribution is printed.
	FrequencyColumns []string `json:"frequency_columns"`
}

// Storage selects the sink used to persist the cleaned table. Kind "none"
// (or empty) disables persistence; the run is report-only.
type Storage struct {
	// Kind selects the storage implementation: "none", "sqlite", "postgres".
	Kind string `json:"kind"`

	// DB configures the database sink when Kind is not "none".
	DB DBConfig `json:"db"`
}

// DBConfig configures the DB sink.
type DBConfig struct {
	// DSN is the connection string (pgx pool DSN for postgres, file path or
	// URI for sqlite).
	DSN string `json:"dsn"`

	// Table is the destination table name (fully qualified for postgres).
	Table string `json:"table"`

	// AutoCreateTable creates the destination table from the cleaned schema
	// before inserting.
	AutoCreateTable bool `json:"auto_create_table"`

	// BatchSize caps rows per insert batch; 0 uses the backend default.
	BatchSize int `json:"batch_size"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It performs only
// minimal type coercion and returns provided defaults when a key is absent or
// of an unexpected type.
type Options map[string]any

// Any returns the raw decoded value for key, or nil when absent. Callers
// that need structured option values (nested maps, lists) assert the shape
// themselves.
func (o Options) Any(key string) any {
	return o[key]
}

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers are decoded as
// float64 by encoding/json, so this method accepts float64 and casts to int.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Useful for single-character parser settings such as a CSV
// delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// StringSlice returns a []string for key when the value is an array of
// strings (or an array of interface values containing strings). Returns nil
// when the key is missing or the value is not an array.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler so that an explicit null
// "options" object decodes to a non-nil, empty Options map. A fully absent
// key still leaves the map nil, which every getter tolerates.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
