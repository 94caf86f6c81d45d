// Command jsoninfer infers a JSON Schema from sample JSON or YAML documents.
//
// Usage:
//
//	jsoninfer [flags] FILE...
//	jsoninfer --stdin [flags] < sample.json
//	jsoninfer mcp [--config FILE]
//	jsoninfer config-schema
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"

	"github.com/usestring/jsoninfer/internal/config"
	"github.com/usestring/jsoninfer/internal/loader"
	"github.com/usestring/jsoninfer/internal/logging"
	"github.com/usestring/jsoninfer/internal/query"
	"github.com/usestring/jsoninfer/internal/render"
	"github.com/usestring/jsoninfer/pkg/contenttype"
	"github.com/usestring/jsoninfer/pkg/jsonschema"
	"github.com/usestring/jsoninfer/pkg/mcpsrv"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "mcp":
			return runMCP(ctx, args[1:], stderr)
		case "config-schema":
			return runConfigSchema(stdout, stderr)
		}
	}
	return runInfer(ctx, args, stdin, stdout, stderr)
}

// inferFlags holds the command line of the infer command.
type inferFlags struct {
	stdin      bool
	merge      bool
	noPatterns bool
	compact    bool
	stats      bool
	threshold  float64
	title      string
	output     string
	draft      string
	selectExpr string
	strategy   string
	configPath string
	logLevel   string
}

func newInferFlagSet(f *inferFlags, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("jsoninfer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&f.stdin, "stdin", false, "read one document from standard input instead of files")
	fs.BoolVar(&f.merge, "merge", false, "merge all samples; with --stdin a top-level array is split into samples")
	fs.BoolVar(&f.noPatterns, "no-patterns", false, "disable uuid/email/uri/date-time format detection")
	fs.Float64Var(&f.threshold, "required-threshold", config.DefaultRequiredThresholdValue, "fraction of samples a property must appear in to be required (0..1)")
	fs.StringVar(&f.title, "title", "", "schema title")
	fs.StringVar(&f.output, "output", "", "write the schema to this file instead of standard output")
	fs.StringVar(&f.draft, "draft", jsonschema.DefaultDraft, "JSON Schema draft: 2020-12, 7 or 4")
	fs.StringVar(&f.selectExpr, "select", "", "jq expression applied to each document; every output is a sample")
	fs.StringVar(&f.strategy, "strategy", string(jsonschema.StrategyBatch), "merge strategy: batch or pairwise (experimental)")
	fs.BoolVar(&f.compact, "compact", false, "write compact JSON")
	fs.BoolVar(&f.stats, "stats", false, "print per-field statistics to standard error")
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file (default $"+config.EnvConfigFile+")")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Infer JSON Schema from samples\n\nUsage:\n  jsoninfer [flags] FILE...\n  jsoninfer --stdin [flags]\n  jsoninfer mcp [--config FILE]\n  jsoninfer config-schema\n\nFlags:")
		fs.PrintDefaults()
	}
	return fs
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(fs *flag.FlagSet, f *inferFlags, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "draft":
			cfg.Draft = f.draft
		case "required-threshold":
			cfg.RequiredThreshold = f.threshold
		case "strategy":
			cfg.Strategy = f.strategy
		case "no-patterns":
			cfg.DetectFormats = !f.noPatterns
		case "compact":
			if f.compact {
				cfg.Indent = 0
			}
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})
}

func runInfer(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var f inferFlags
	fs := newInferFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.LoadFile(f.configPath)
	if err != nil {
		return fail(stderr, err)
	}
	applyFlags(fs, &f, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	var sel *query.Selector
	if f.selectExpr != "" {
		sel, err = query.Compile(f.selectExpr)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
	}

	logCfg := logging.FromConfig(cfg)
	logCfg.Stderr = stderr
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fail(stderr, err)
	}
	defer cleanup()

	formats, err := jsonschema.NewFormatDetector(cfg.FormatCacheSize)
	if err != nil {
		return fail(stderr, err)
	}

	l := loader.New(loader.Options{
		Workers: cfg.LoadWorkers,
		Merge:   f.merge,
		Select:  sel,
	})

	if sel != nil {
		slog.Debug("selecting samples", slog.String("expression", sel.String()))
	}

	var samples []loader.Sample
	if f.stdin {
		samples, err = l.LoadReader(loader.StdinSource, stdin, contenttype.JSON)
	} else {
		samples, err = l.LoadFiles(ctx, fs.Args())
	}
	if err != nil {
		return fail(stderr, err)
	}

	values := loader.Values(samples)
	if !f.merge {
		values = values[:1]
	}
	result := jsonschema.InferSamples(values, cfg.InferOptions(formats))
	slog.Debug("schema inferred",
		slog.Int("samples", result.SampleCount),
		slog.Bool("all_match", result.AllMatch),
	)

	doc := jsonschema.Finalize(result.Schema, cfg.Draft, f.title)
	data, err := render.Marshal(doc, cfg.Indent)
	if err != nil {
		return fail(stderr, err)
	}
	if err := render.Write(stdout, f.output, data); err != nil {
		return fail(stderr, err)
	}

	if f.stats {
		stats := jsonschema.ComputeFieldStats(result.Schema, values)
		if err := render.FieldStats(stderr, stats, result.SampleCount); err != nil {
			return fail(stderr, err)
		}
	}
	return exitOK
}

func runMCP(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsoninfer mcp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file (default $"+config.EnvConfigFile+")")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	server, err := mcpsrv.NewServer(
		mcpsrv.WithConfigFile(*configPath),
		mcpsrv.WithLogLevel(*logLevel),
	)
	if err != nil {
		return fail(stderr, err)
	}
	defer server.Close()

	slog.Info("starting jsoninfer MCP server on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		return exitError
	}
	slog.Info("server stopped")
	return exitOK
}

func runConfigSchema(stdout, stderr io.Writer) int {
	data, err := json.MarshalIndent(config.JSONSchema(), "", "  ")
	if err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintln(stdout, string(data))
	return exitOK
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}
