package jsonschema

import (
	"errors"
	"fmt"
)

// Strategy selects how several schemas are folded into one.
type Strategy string

const (
	// StrategyBatch merges all schemas at once with a type-array union
	// fallback and the required-threshold rule. It is the canonical policy.
	StrategyBatch Strategy = "batch"
	// StrategyPairwise left-folds schemas with MergePair, producing anyOf
	// alternatives for incompatible types. Experimental.
	StrategyPairwise Strategy = "pairwise"
)

// ErrUnknownStrategy is returned by ParseStrategy for unsupported names.
var ErrUnknownStrategy = errors.New("unknown merge strategy")

// ParseStrategy parses a strategy name. The empty string selects StrategyBatch.
// StrategyPairwise is experimental.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyBatch:
		return StrategyBatch, nil
	case StrategyPairwise:
		return StrategyPairwise, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: batch, pairwise)", ErrUnknownStrategy, s)
	}
}

// InferredSchema contains a JSON Schema inferred from sample data along with metadata.
type InferredSchema struct {
	Schema      *Schema `json:"schema"`       // Merged schema
	SampleCount int     `json:"sample_count"` // Number of samples used
	AllMatch    bool    `json:"all_match"`    // True if all samples had identical schema
}

// InferSamples infers one schema from several independent samples.
//
// The per-sample schemas are combined with MergeSampleSchemas.
// Returns nil if samples is empty. If opts is nil, DefaultInferOptions() is used.
func InferSamples(samples []any, opts *InferOptions) *InferredSchema {
	if len(samples) == 0 {
		return nil
	}
	if opts == nil {
		opts = DefaultInferOptions()
	}
	in := newInferrer(opts)

	schemas := make([]*Schema, 0, len(samples))
	for _, sample := range samples {
		schemas = append(schemas, in.infer(sample))
	}

	allMatch := true
	for _, s := range schemas[1:] {
		if !s.Equal(schemas[0]) {
			allMatch = false
			break
		}
	}

	return &InferredSchema{
		Schema:      in.merger.top(schemas),
		SampleCount: len(schemas),
		AllMatch:    allMatch,
	}
}

// MergeSampleSchemas combines the schemas of independent samples. When every
// schema is an object they are merged with the object-merge rule whatever
// the strategy, so opts.RequiredThreshold decides the top-level required
// set; otherwise they are folded with opts.Strategy. If opts is nil,
// DefaultInferOptions() is used.
func MergeSampleSchemas(schemas []*Schema, opts *InferOptions) *Schema {
	if opts == nil {
		opts = DefaultInferOptions()
	}
	return newMerger(opts.RequiredThreshold, opts.Strategy).top(schemas)
}

func (m merger) top(schemas []*Schema) *Schema {
	switch len(schemas) {
	case 0:
		return &Schema{}
	case 1:
		return schemas[0]
	}
	for _, s := range schemas {
		if !s.IsObject() {
			return m.fold(schemas)
		}
	}
	return m.mergeObjects(schemas, len(schemas))
}
