package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsoninfer/internal/render"
	"github.com/usestring/jsoninfer/pkg/jsonschema"
	"github.com/usestring/jsoninfer/pkg/types"
)

// MergeSchemasInput is the input for merge_schemas.
type MergeSchemasInput struct {
	Schemas           []string `json:"schemas" jsonschema:"JSON Schema documents as JSON text, typically earlier infer_schema results"`
	RequiredThreshold *float64 `json:"required_threshold,omitempty" jsonschema:"Fraction of object schemas a property must appear in to be required, 0..1 (default: 1)"`
	Strategy          string   `json:"strategy,omitempty" jsonschema:"Merge algebra: batch (type unions, default) or pairwise (experimental, anyOf)"`
	Draft             string   `json:"draft,omitempty" jsonschema:"JSON Schema draft of the result: 2020-12 (default), 7 or 4"`
	Title             string   `json:"title,omitempty" jsonschema:"Title of the merged document"`
}

// ToolMergeSchemas merges previously inferred schemas into one.
func ToolMergeSchemas(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input MergeSchemasInput) (*sdkmcp.CallToolResult, types.MergeSchemasOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input MergeSchemasInput) (*sdkmcp.CallToolResult, types.MergeSchemasOutput, error) {
		if len(input.Schemas) == 0 {
			return nil, types.MergeSchemasOutput{}, ErrInvalidInput("schemas is required")
		}

		opts, err := d.inferOptions(nil, input.RequiredThreshold, input.Strategy)
		if err != nil {
			return nil, types.MergeSchemasOutput{}, err
		}
		draft, err := d.draft(input.Draft)
		if err != nil {
			return nil, types.MergeSchemasOutput{}, err
		}

		schemas := make([]*jsonschema.Schema, 0, len(input.Schemas))
		for i, text := range input.Schemas {
			var s jsonschema.Schema
			if err := s.UnmarshalJSON([]byte(text)); err != nil {
				return nil, types.MergeSchemasOutput{}, ErrInvalidInput(fmt.Sprintf("schemas[%d] is not a valid schema: %v", i, err))
			}
			// Document metadata does not take part in merging.
			s.Version, s.Title = "", ""
			schemas = append(schemas, &s)
		}

		merged := jsonschema.MergeSampleSchemas(schemas, opts)

		doc := jsonschema.Finalize(merged, draft, input.Title)
		schemaAny, err := types.ToAny(doc)
		if err != nil {
			return nil, types.MergeSchemasOutput{}, &CodedError{Code: ErrCodeInternal, Message: "encoding schema", Cause: err}
		}
		text, err := render.Marshal(doc, d.Config.Indent)
		if err != nil {
			return nil, types.MergeSchemasOutput{}, &CodedError{Code: ErrCodeInternal, Message: "encoding schema", Cause: err}
		}

		return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(text)}},
			}, types.MergeSchemasOutput{
				Schema:     schemaAny,
				InputCount: len(schemas),
			}, nil
	}
}
