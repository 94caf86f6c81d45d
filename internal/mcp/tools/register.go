package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: infer_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "infer_schema",
		Description: "Infer a JSON Schema from sample JSON or YAML documents. Returns {schema, sample_count, all_match, field_stats}. Set merge=true to describe every sample at once; properties missing from some samples are left out of required (see required_threshold). Use select (jq) to describe a nested part of each document, e.g. '.data.items[]'.",
	}, ToolInferSchema(d))

	// Tool 2: merge_schemas
	AddTool(srv, &sdkmcp.Tool{
		Name:        "merge_schemas",
		Description: "Merge several JSON Schemas into one schema accepting every shape they accept. Incompatible types become a type union (batch) or anyOf (pairwise). Use this to widen a stored schema with a newly inferred one.",
	}, ToolMergeSchemas(d))
}
