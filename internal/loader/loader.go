// Package loader reads sample documents from files and standard input.
package loader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/jsoninfer/internal/query"
	"github.com/usestring/jsoninfer/pkg/contenttype"
)

// DefaultWorkers is the number of files read concurrently when Options
// leaves Workers unset.
const DefaultWorkers = 8

// Options controls how sources become samples.
type Options struct {
	// Workers bounds concurrent file reads.
	Workers int
	// Merge splits a top-level array read from standard input into one
	// sample per element.
	Merge bool
	// Select, when set, replaces every document by the outputs of a jq
	// expression.
	Select *query.Selector
}

// Sample is one decoded document and the source it came from.
type Sample struct {
	Source string
	Value  any
}

// Values returns the decoded documents of samples in order.
func Values(samples []Sample) []any {
	out := make([]any, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

// Loader turns sources into samples.
type Loader struct {
	opts Options
}

// New creates a loader.
func New(opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Loader{opts: opts}
}

// LoadFiles reads every path concurrently and returns the samples in path
// order. A JSON file is one sample; a YAML file yields one sample per
// document. When several files fail, the error of the first failing path is
// returned.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]Sample, error) {
	results := make([][]Sample, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Per-file failures are collected so the reported error does
			// not depend on scheduling.
			results[i], errs[i] = l.loadFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := firstError(errs); err != nil {
		return nil, err
	}

	var samples []Sample
	for _, r := range results {
		samples = append(samples, r...)
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadFile(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceError{Source: path, Kind: KindNotFound, Err: err}
		}
		return nil, &SourceError{Source: path, Kind: KindRead, Err: err}
	}

	docs, err := Decode(path, data, contenttype.FromPath(path))
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded file",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
		slog.Int("documents", len(docs)),
	)

	return l.samples(path, docs)
}

// LoadReader reads one whole document stream, such as standard input. An
// input that is empty after trimming whitespace is a KindEmpty error. With
// Options.Merge a single top-level array is split into its elements.
func (l *Loader) LoadReader(source string, r io.Reader, cat contenttype.Category) ([]Sample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &SourceError{Source: source, Kind: KindRead, Err: err}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &SourceError{Source: source, Kind: KindEmpty}
	}
	if cat == contenttype.Unknown {
		cat = contenttype.JSON
	}

	docs, err := Decode(source, data, cat)
	if err != nil {
		return nil, err
	}

	samples, err := l.samples(source, docs)
	if err != nil {
		return nil, err
	}
	if l.opts.Merge && len(samples) == 1 {
		if arr, ok := samples[0].Value.([]any); ok {
			samples = make([]Sample, 0, len(arr))
			for _, item := range arr {
				samples = append(samples, Sample{Source: source, Value: item})
			}
		}
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

// samples applies the selector to decoded documents.
func (l *Loader) samples(source string, docs []any) ([]Sample, error) {
	if l.opts.Select != nil {
		var selected []any
		for _, d := range docs {
			values, err := l.opts.Select.Select(source, d)
			if err != nil {
				return nil, err
			}
			selected = append(selected, values...)
		}
		docs = selected
	}

	out := make([]Sample, 0, len(docs))
	for _, d := range docs {
		out = append(out, Sample{Source: source, Value: d})
	}
	return out, nil
}
