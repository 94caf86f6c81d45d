package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleSchemaFromSamples serves the sample-to-schema workflow guide. The
// configured defaults are spelled out so the model knows when to override them.
func HandleSchemaFromSamples(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var payload, selectExpr string
		if args := req.Params.Arguments; args != nil {
			payload = args["payload"]
			selectExpr = args["select"]
		}

		var sb strings.Builder

		sb.WriteString("# Derive a JSON Schema from Samples\n\n")
		if payload != "" {
			fmt.Fprintf(&sb, "Describe the shape of: **%s**.\n\n", payload)
		}

		sb.WriteString("## Defaults\n\n")
		sb.WriteString("| Setting | Value | Override |\n")
		sb.WriteString("|---------|-------|----------|\n")
		fmt.Fprintf(&sb, "| Draft | `%s` | `draft` |\n", cfg.Draft)
		fmt.Fprintf(&sb, "| Required threshold | `%g` | `required_threshold` |\n", cfg.RequiredThreshold)
		fmt.Fprintf(&sb, "| Merge strategy | `%s` | `strategy` |\n", cfg.Strategy)

		sb.WriteString("\n## Workflow\n\n")
		sb.WriteString("1. **Collect samples**: pass every document as one entry of `samples` (JSON text, or YAML with `syntax: \"yaml\"`)\n")
		sb.WriteString("2. **Infer**: `infer_schema(samples: [...], merge: true, include_stats: true)`\n")
		sb.WriteString("   - Without `merge`, only the first sample is described\n")
		sb.WriteString("   - A single sample holding a top-level array is split into its elements when `merge` is set\n")
		if selectExpr != "" {
			fmt.Fprintf(&sb, "   - Describe only the selected part: `select: %q`\n", selectExpr)
		} else {
			sb.WriteString("   - Use `select` (jq) to describe a nested part, e.g. `.data.items[]`\n")
		}
		sb.WriteString("3. **Review**: check `all_match` and `field_stats`\n")
		sb.WriteString("   - `frequency < 1` marks optional properties; lower `required_threshold` to keep mostly-present ones required\n")
		sb.WriteString("   - `nullable: true` properties carry a `null` member in their type union\n")
		sb.WriteString("4. **Widen later**: `merge_schemas(schemas: [stored, newlyInferred])` accepts everything either schema accepts\n")

		sb.WriteString("\n## Reading the Result\n\n")
		sb.WriteString("- `type: [\"integer\", \"string\"]`: samples disagree on the type (batch strategy)\n")
		sb.WriteString("- `anyOf`: the same disagreement under the pairwise strategy\n")
		sb.WriteString("- `format` (uuid, email, uri, date-time) survives only when every sample agrees\n")
		sb.WriteString("- `items: {}`: every observed array was empty\n")

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for inferring and widening JSON Schemas",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
