// Package csv parses the delimited listings file into records keyed by
// canonical column names. The file is read once, fully materialized, and
// never revisited; encoding is handled up front so the rest of the pipeline
// only ever sees UTF-8.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"autostat/pkg/records"
)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing ASCII spaces from each field value.
	TrimSpace bool

	// ExpectedFields, when > 0, enforces a fixed field count per record.
	ExpectedFields int

	// Encoding names the character encoding of the input bytes: "utf-8"
	// (default), "latin-1" / "iso-8859-1", or "windows-1252".
	Encoding string

	// HeaderMap maps source header names to canonical keys (camelCase crawl
	// names to snake_case). Only applies when HasHeader is true.
	HeaderMap map[string]string

	// HeaderCheck, when set, is called with the raw header (trimmed, BOM
	// stripped, before HeaderMap) and aborts the parse if it returns an
	// error. This is where schema drift turns fatal.
	HeaderCheck func([]string) error

	// Strict makes any unreadable or wrong-width row a fatal parse error.
	// When false, such rows are skipped and counted (soft-fail), matching
	// exploratory usage where a handful of mangled lines is tolerable.
	Strict bool
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps per-row skip logging in soft-fail mode.
const skipLogLimit = 400

// Parse consumes CSV records from r and returns the parsed rows along with
// the number of rows skipped (always zero in Strict mode, where the first bad
// row aborts the whole parse instead).
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	dr, err := decodeReader(r, p.opt.Encoding)
	if err != nil {
		return nil, 0, err
	}

	cr := csv.NewReader(dr)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// Width is enforced after read so soft-fail mode can count mismatches.
	cr.FieldsPerRecord = -1

	var headers []string
	var out []records.Record
	var skipped int

	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		raw := rawHeaders(h)
		if p.opt.HeaderCheck != nil {
			if err := p.opt.HeaderCheck(raw); err != nil {
				return nil, 0, err
			}
		}
		headers = canonicalHeaders(raw, p.opt.HeaderMap)
	} else if p.opt.ExpectedFields > 0 {
		headers = make([]string, p.opt.ExpectedFields)
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i)
		}
	}

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if p.opt.Strict {
				return nil, 0, fmt.Errorf("csv row %d: %w", line, err)
			}
			if skipped < skipLogLimit {
				log.Printf("skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if len(headers) > 0 && len(row) != len(headers) {
			if p.opt.Strict {
				return nil, 0, fmt.Errorf("csv row %d: %d fields, want %d", line, len(row), len(headers))
			}
			if skipped < skipLogLimit {
				log.Printf("skipping row %d: incorrect number of fields (expected %d, got %d)", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[keyFor(i, headers)] = emptyToNil(val)
		}
		out = append(out, rec)
	}

	return out, skipped, nil
}

// keyFor returns the column key for index idx, using headers when available,
// otherwise synthesizing a "col_N" name.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// emptyToNil converts an empty string to nil; all other values are returned as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// rawHeaders trims each header cell and strips a UTF-8 BOM from the first.
func rawHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		res[i] = c
	}
	return res
}

// canonicalHeaders maps raw header names through hm when provided, falling
// back to simple normalization (lowercase, spaces to underscores).
func canonicalHeaders(raw []string, hm map[string]string) []string {
	res := make([]string, len(raw))
	for i, c := range raw {
		if hm != nil {
			if m, ok := hm[c]; ok {
				res[i] = m
				continue
			}
		}
		res[i] = strings.ReplaceAll(strings.ToLower(c), " ", "_")
	}
	return res
}
