// Pipeline wiring for the autostat binary. This file keeps the CLI layer
// thin: it maps the decoded config onto concrete sources, parsers,
// transformers, and sinks, and owns the run's stage-by-stage bookkeeping.
package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"autostat/internal/config"
	"autostat/internal/datasource"
	"autostat/internal/datasource/file"
	"autostat/internal/parser"
	csvparser "autostat/internal/parser/csv"
	"autostat/internal/report"
	"autostat/internal/schema"
	"autostat/internal/storage"
	"autostat/internal/transformer"
	"autostat/internal/transformer/builtin"

	"autostat/pkg/records"
)

// run executes the full load -> clean -> report (-> persist) pipeline and
// writes the rendered report to out. Any stage error aborts the run; there
// are no partial results.
func run(ctx context.Context, p config.Pipeline, out io.Writer) error {
	src, err := buildSource(p.Source)
	if err != nil {
		return err
	}
	parser, err := buildParser(p.Parser)
	if err != nil {
		return err
	}
	chain, names, err := buildChain(p.Transform)
	if err != nil {
		return err
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	recs, skipped, err := parser.Parse(rc)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	log.Printf("parsed rows=%d skipped=%d", len(recs), skipped)

	// Apply the chain one stage at a time so the exclusion counts per stage
	// can be summarized (counts only; dropped rows are not logged).
	for i, t := range chain {
		before := len(recs)
		recs, err = t.Apply(recs)
		if err != nil {
			return fmt.Errorf("transform %s: %w", names[i], err)
		}
		if dropped := before - len(recs); dropped > 0 {
			log.Printf("transform %s: dropped=%d remaining=%d", names[i], dropped, len(recs))
		}
	}
	log.Printf("cleaned rows=%d", len(recs))

	rep := report.Build(recs, reportOptions(p.Report))
	if err := rep.Render(out); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	return persist(ctx, p.Storage, recs)
}

// buildSource maps the source config onto a datasource implementation.
func buildSource(s config.Source) (datasource.Source, error) {
	switch s.Kind {
	case "file":
		return file.NewLocal(s.File.Path), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", s.Kind)
	}
}

// buildParser maps the parser config onto a parser implementation. The
// "schema" option pins the parser to a named dataset contract; "autos" wires
// the listings header map and the fatal drift check.
func buildParser(p config.Parser) (parser.Parser, error) {
	if p.Kind != "csv" {
		return nil, fmt.Errorf("unknown parser kind %q", p.Kind)
	}

	opt := csvparser.Options{
		HasHeader:      p.Options.Bool("has_header", true),
		Comma:          p.Options.Rune("comma", ','),
		TrimSpace:      p.Options.Bool("trim_space", true),
		ExpectedFields: p.Options.Int("expected_fields", 0),
		Encoding:       p.Options.String("encoding", "utf-8"),
		Strict:         p.Options.Bool("strict", false),
	}

	switch sc := p.Options.String("schema", ""); sc {
	case "":
		if hm := p.Options.StringMap("header_map"); len(hm) > 0 {
			opt.HeaderMap = hm
		}
	case "autos":
		opt.HeaderMap = schema.HeaderMap
		opt.HeaderCheck = schema.CheckHeader
	default:
		return nil, fmt.Errorf("unknown parser schema %q", sc)
	}

	return csvparser.NewParser(opt), nil
}

// buildChain maps the transform config list onto transformer instances,
// returning the kinds alongside for per-stage logging.
func buildChain(ts []config.Transform) (transformer.Chain, []string, error) {
	var chain transformer.Chain
	var names []string
	for i, t := range ts {
		tr, err := buildTransform(t)
		if err != nil {
			return nil, nil, fmt.Errorf("transform[%d]: %w", i, err)
		}
		chain = append(chain, tr)
		names = append(names, t.Kind)
	}
	return chain, names, nil
}

func buildTransform(t config.Transform) (transformer.Transformer, error) {
	switch t.Kind {
	case "normalize":
		return builtin.Normalize{}, nil

	case "drop":
		return builtin.Drop{Fields: t.Options.StringSlice("fields")}, nil

	case "coerce":
		c := builtin.Coerce{Ints: t.Options.StringSlice("ints")}
		raw, _ := t.Options.Any("decorated").([]any)
		for _, el := range raw {
			m, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("coerce: decorated entries must be objects")
			}
			o := config.Options(m)
			nf := builtin.NumericField{
				Field:       o.String("field", ""),
				StripPrefix: o.String("strip_prefix", ""),
				StripSuffix: o.String("strip_suffix", ""),
				Rename:      o.String("rename", ""),
			}
			if nf.Field == "" {
				return nil, fmt.Errorf("coerce: decorated entry missing field")
			}
			c.Decorated = append(c.Decorated, nf)
		}
		return c, nil

	case "range":
		return builtin.RangeFilter{
			Field: t.Options.String("field", ""),
			Min:   t.Options.Int("min", 0),
			Max:   t.Options.Int("max", 0),
		}, nil

	case "dedup":
		return builtin.DeDup{
			Keys:   t.Options.StringSlice("keys"),
			Policy: t.Options.String("policy", ""),
		}, nil

	default:
		return nil, fmt.Errorf("unknown transform kind %q", t.Kind)
	}
}

// reportOptions maps report config onto report options, filling the
// historical defaults (top 20 ranking, 5-brand comparison) for zero values.
func reportOptions(r config.Report) report.Options {
	return report.Options{
		TopBrands:        pickInt(r.TopBrands, 20),
		CompareBrands:    pickInt(r.CompareBrands, 5),
		DateColumns:      r.DateColumns,
		FrequencyColumns: r.FrequencyColumns,
	}
}

// persist writes the cleaned table to the configured sink, if any.
func persist(ctx context.Context, s config.Storage, recs []records.Record) error {
	if s.Kind == "" || s.Kind == "none" {
		return nil
	}

	repo, err := storage.New(ctx, storage.Config{
		Kind:            s.Kind,
		DSN:             s.DB.DSN,
		Table:           s.DB.Table,
		Columns:         schema.CleanColumns,
		AutoCreateTable: s.DB.AutoCreateTable,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureTable(ctx); err != nil {
		return err
	}

	n, err := storage.WriteRecords(ctx, repo, schema.CleanColumns, recs, s.DB.BatchSize)
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	log.Printf("persisted rows=%d table=%s kind=%s", n, s.DB.Table, s.Kind)
	return nil
}

func pickInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
