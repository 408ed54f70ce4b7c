// Command autostat loads a crawl of used-car classified ads, cleans it
// (rename, drop, coerce, filter), prints descriptive summaries, and can
// persist the cleaned table to a configured sink.
//
// The run is described by a JSON pipeline file:
//
//	autostat -config configs/autos.json
//	autostat -config configs/autos.json -input /data/autos.csv
//	autostat -config configs/autos.json -validate
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"autostat/internal/config"

	// register all storage backends with the factory.
	_ "autostat/internal/storage/all"
)

func main() {
	var (
		cfgPath  string
		input    string
		validate bool
	)

	flag.StringVar(&cfgPath, "config", "configs/autos.json", "pipeline config JSON path")
	flag.StringVar(&input, "input", "", "override source file path from the config")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	f, err := os.Open(cfgPath)
	if err != nil {
		fatalf("open config: %v", err)
	}
	defer f.Close()

	var p config.Pipeline
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		fatalf("decode config: %v", err)
	}
	if input != "" {
		p.Source.File.Path = input
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("pipeline: source=%s parser=%s storage=%s",
			p.Source.Kind, p.Parser.Kind, p.Storage.Kind)
	}

	if err := run(ctx, p, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
