// Package records defines the row model shared by every pipeline stage.
package records

// Record is a single parsed row keyed by canonical column name. Values start
// as strings (or nil for empty cells) and are narrowed to concrete types by
// the coerce stage.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the value for key as a string, or "" when the value is
// missing, nil, or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Int returns the value for key as an int. The second return is false when
// the value is missing or not an int.
func (r Record) Int(key string) (int, bool) {
	if v, ok := r[key]; ok {
		if i, ok := v.(int); ok {
			return i, true
		}
	}
	return 0, false
}
