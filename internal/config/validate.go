// Package config provides configuration models and helpers for autostat runs.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "transform[1].options.field"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownTransformKinds enumerates the transform implementations that ship with
// the binary. Unknown kinds fail at build time in the run layer; here they
// are a static error so -validate catches typos before a run.
var knownTransformKinds = map[string]struct{}{
	"normalize": {},
	"drop":      {},
	"coerce":    {},
	"range":     {},
	"dedup":     {},
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateTransforms(p.Transform)...)
	issues = append(issues, validateReport(p.Report)...)
	issues = append(issues, validateStorage(p.Storage)...)

	return issues
}

// validateSource validates Source configuration.
func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
		return issues
	}

	// Known source kinds. Unknown kinds are warnings (for forward compatibility).
	known := map[string]struct{}{
		"file": {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind),
		})
	}

	switch s.Kind {
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.path",
				Message:  "file source requires a non-empty path",
			})
		}
	}

	return issues
}

// validateParser validates parser configuration.
func validateParser(p Parser) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  "parser.kind must not be empty",
		})
		return issues
	}
	if p.Kind != "csv" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unknown parser kind %q; ensure a matching implementation exists", p.Kind),
		})
		return issues
	}

	switch enc := p.Options.String("encoding", "utf-8"); strings.ToLower(enc) {
	case "utf-8", "utf8", "latin-1", "latin1", "iso-8859-1", "windows-1252", "cp1252":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.encoding",
			Message:  fmt.Sprintf("unsupported encoding %q", enc),
		})
	}

	if n := p.Options.Int("expected_fields", 0); n < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.expected_fields",
			Message:  "expected_fields must be >= 0",
		})
	}

	return issues
}

// validateTransforms validates the transform chain.
func validateTransforms(ts []Transform) []Issue {
	var issues []Issue

	for i, t := range ts {
		path := fmt.Sprintf("transform[%d]", i)
		if strings.TrimSpace(t.Kind) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".kind",
				Message:  "transform kind must not be empty",
			})
			continue
		}
		if _, ok := knownTransformKinds[t.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".kind",
				Message:  fmt.Sprintf("unknown transform kind %q", t.Kind),
			})
			continue
		}

		switch t.Kind {
		case "drop":
			if len(t.Options.StringSlice("fields")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options.fields",
					Message:  "drop requires at least one field",
				})
			}
		case "range":
			if strings.TrimSpace(t.Options.String("field", "")) == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options.field",
					Message:  "range requires a field name",
				})
			}
			if t.Options.Int("min", 0) > t.Options.Int("max", 0) {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options",
					Message:  "range min must not exceed max",
				})
			}
		case "dedup":
			if len(t.Options.StringSlice("keys")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options.keys",
					Message:  "dedup requires at least one key field",
				})
			}
		}
	}

	return issues
}

// validateReport validates report configuration.
func validateReport(r Report) []Issue {
	var issues []Issue

	if r.TopBrands < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.top_brands",
			Message:  "top_brands must be >= 0",
		})
	}
	if r.CompareBrands < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.compare_brands",
			Message:  "compare_brands must be >= 0",
		})
	}
	if r.CompareBrands > r.TopBrands && r.TopBrands > 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "report.compare_brands",
			Message:  "compare_brands exceeds top_brands; comparison will rank brands independently",
		})
	}

	return issues
}

// validateStorage validates storage configuration.
func validateStorage(s Storage) []Issue {
	var issues []Issue

	kind := strings.TrimSpace(s.Kind)
	if kind == "" || kind == "none" {
		return issues
	}

	known := map[string]struct{}{
		"sqlite":   {},
		"postgres": {},
	}
	if _, ok := known[kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q", kind),
		})
		return issues
	}

	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  fmt.Sprintf("%s storage requires a non-empty dsn", kind),
		})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  fmt.Sprintf("%s storage requires a non-empty table", kind),
		})
	}
	if s.DB.BatchSize < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.batch_size",
			Message:  "batch_size must be >= 0",
		})
	}

	return issues
}
