package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"autostat/pkg/records"
)

// NumericField describes one decorated text column to be parsed into an int:
// an optional currency prefix and unit suffix are stripped, along with
// thousands separators, and the residue must be a base-10 integer literal.
// Rename optionally gives the parsed column a new key (the odometer gains its
// unit: odometer -> odometer_km).
type NumericField struct {
	Field       string
	StripPrefix string
	StripSuffix string
	Rename      string
}

// Coerce parses text columns into ints. Parsing is strict by contract: a
// value that does not reduce to a valid integer literal is a fatal error, not
// a silent null. Malformed numeric rows are not expected in the declared data
// dictionary and are not defended against.
type Coerce struct {
	// Decorated lists columns carrying unit/currency decoration.
	Decorated []NumericField

	// Ints lists plain integer columns parsed without any stripping.
	Ints []string
}

func (c Coerce) Apply(in []records.Record) ([]records.Record, error) {
	for i, r := range in {
		for _, nf := range c.Decorated {
			v, err := parseDecorated(r, nf)
			if err != nil {
				return nil, fmt.Errorf("coerce row %d: %w", i+1, err)
			}
			if nf.Rename != "" && nf.Rename != nf.Field {
				delete(r, nf.Field)
				r[nf.Rename] = v
			} else {
				r[nf.Field] = v
			}
		}
		for _, f := range c.Ints {
			v, err := parsePlain(r, f)
			if err != nil {
				return nil, fmt.Errorf("coerce row %d: %w", i+1, err)
			}
			r[f] = v
		}
	}
	return in, nil
}

func parseDecorated(r records.Record, nf NumericField) (int, error) {
	raw, ok := r[nf.Field]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s: missing value", nf.Field)
	}
	s, ok := raw.(string)
	if !ok {
		if i, isInt := raw.(int); isInt {
			return i, nil
		}
		return 0, fmt.Errorf("%s: unexpected type %T", nf.Field, raw)
	}

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, nf.StripPrefix)
	s = strings.TrimSuffix(s, nf.StripSuffix)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", nf.Field, raw)
	}
	return i, nil
}

func parsePlain(r records.Record, field string) (int, error) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s: missing value", field)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not an integer", field, v)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%s: unexpected type %T", field, raw)
	}
}
