package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "schema_from_samples",
		Description: "RECOMMENDED: Workflow for deriving a JSON Schema from example payloads with infer_schema and widening it later with merge_schemas.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "payload",
				Description: "What the samples are (e.g., 'GET /users responses', 'service config files')",
				Required:    false,
			},
			{
				Name:        "select",
				Description: "jq expression locating the part of each sample to describe (e.g., '.data.items[]')",
				Required:    false,
			},
		},
	}, HandleSchemaFromSamples(cfg))
}
