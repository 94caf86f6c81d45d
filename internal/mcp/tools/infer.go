package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsoninfer/internal/loader"
	"github.com/usestring/jsoninfer/internal/query"
	"github.com/usestring/jsoninfer/internal/render"
	"github.com/usestring/jsoninfer/pkg/contenttype"
	"github.com/usestring/jsoninfer/pkg/jsonschema"
	"github.com/usestring/jsoninfer/pkg/types"
)

// MaxSamples caps the documents accepted by one infer_schema call.
const MaxSamples = 1000

// InferSchemaInput is the input for infer_schema.
type InferSchemaInput struct {
	Samples           []string `json:"samples" jsonschema:"Sample documents as JSON (or YAML) text, one document per entry"`
	Syntax            string   `json:"syntax,omitempty" jsonschema:"Document syntax: json (default) or yaml"`
	Merge             bool     `json:"merge,omitempty" jsonschema:"Merge every sample into one schema. Without merge only the first sample is described. A single top-level array sample is split into its elements."`
	DetectFormats     *bool    `json:"detect_formats,omitempty" jsonschema:"Attach uuid/email/uri/date-time format hints (default: true)"`
	RequiredThreshold *float64 `json:"required_threshold,omitempty" jsonschema:"Fraction of samples a property must appear in to be required, 0..1 (default: 1)"`
	Strategy          string   `json:"strategy,omitempty" jsonschema:"Merge algebra: batch (type unions, default) or pairwise (experimental, anyOf)"`
	Select            string   `json:"select,omitempty" jsonschema:"jq expression applied to every sample; each output becomes a sample"`
	Draft             string   `json:"draft,omitempty" jsonschema:"JSON Schema draft: 2020-12 (default), 7 or 4"`
	Title             string   `json:"title,omitempty" jsonschema:"Title of the schema document"`
	IncludeStats      bool     `json:"include_stats,omitempty" jsonschema:"Include per-field statistics (frequency, nullability, distinct values, examples)"`
}

// ToolInferSchema infers a JSON Schema from sample documents.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
		if len(input.Samples) == 0 {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput("samples is required")
		}
		if len(input.Samples) > MaxSamples {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput(fmt.Sprintf("at most %d samples are accepted", MaxSamples))
		}

		syntax := contenttype.JSON
		if input.Syntax != "" {
			syntax = contenttype.Classify(input.Syntax)
			if syntax == contenttype.Unknown {
				return nil, types.InferSchemaOutput{}, ErrInvalidInput("syntax must be 'json' or 'yaml'")
			}
		}

		opts, err := d.inferOptions(input.DetectFormats, input.RequiredThreshold, input.Strategy)
		if err != nil {
			return nil, types.InferSchemaOutput{}, err
		}
		draft, err := d.draft(input.Draft)
		if err != nil {
			return nil, types.InferSchemaOutput{}, err
		}

		loaderOpts := loader.Options{
			// Only a lone sample is split, as with standard input.
			Merge: input.Merge && len(input.Samples) == 1,
		}
		if input.Select != "" {
			sel, err := query.Compile(input.Select)
			if err != nil {
				return nil, types.InferSchemaOutput{}, ErrInvalidInput(err.Error())
			}
			loaderOpts.Select = sel
		}

		l := loader.New(loaderOpts)
		var values []any
		for i, text := range input.Samples {
			if err := ctx.Err(); err != nil {
				return nil, types.InferSchemaOutput{}, WrapLoadError(err)
			}
			samples, err := l.LoadReader(fmt.Sprintf("samples[%d]", i), strings.NewReader(text), syntax)
			if err != nil {
				return nil, types.InferSchemaOutput{}, WrapLoadError(err)
			}
			values = append(values, loader.Values(samples)...)
		}

		if !input.Merge {
			values = values[:1]
		}
		inferred := jsonschema.InferSamples(values, opts)

		doc := jsonschema.Finalize(inferred.Schema, draft, input.Title)
		schemaAny, err := types.ToAny(doc)
		if err != nil {
			return nil, types.InferSchemaOutput{}, &CodedError{Code: ErrCodeInternal, Message: "encoding schema", Cause: err}
		}
		text, err := render.Marshal(doc, d.Config.Indent)
		if err != nil {
			return nil, types.InferSchemaOutput{}, &CodedError{Code: ErrCodeInternal, Message: "encoding schema", Cause: err}
		}

		output := types.InferSchemaOutput{
			Schema:      schemaAny,
			SampleCount: inferred.SampleCount,
			AllMatch:    inferred.AllMatch,
			Hint:        "Pass this schema with others to merge_schemas to widen it with later samples.",
		}
		if input.IncludeStats {
			output.FieldStats = jsonschema.ComputeFieldStats(inferred.Schema, values)
		}

		slog.Debug("schema inferred",
			slog.Int("samples", inferred.SampleCount),
			slog.Bool("all_match", inferred.AllMatch),
			slog.String("strategy", string(opts.Strategy)),
		)

		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(text)}},
		}, output, nil
	}
}
