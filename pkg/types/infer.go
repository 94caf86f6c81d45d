package types

import "github.com/usestring/jsoninfer/pkg/jsonschema"

// InferSchemaOutput is the output type for the infer_schema tool.
type InferSchemaOutput struct {
	// Finalized schema document as untyped JSON
	Schema any `json:"schema"`

	// Number of samples the schema describes
	SampleCount int `json:"sample_count"`

	// True when every sample produced the same schema
	AllMatch bool `json:"all_match"`

	// Per-field statistics, only when requested
	FieldStats []jsonschema.FieldStat `json:"field_stats,omitempty"`

	// Hint for the next step
	Hint string `json:"hint,omitempty"`
}

// MergeSchemasOutput is the output type for the merge_schemas tool.
type MergeSchemasOutput struct {
	// Finalized merged schema as untyped JSON
	Schema any `json:"schema"`

	// Number of input schemas merged
	InputCount int `json:"input_count"`
}
