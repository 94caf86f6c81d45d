// Package mcpsrv provides an extensible MCP server for jsoninfer.
//
// The server exposes the infer_schema and merge_schemas tools, the
// jsoninfer://drafts resource and a workflow prompt. Users can extend it with
// custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server configured from the environment:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Custom tools can reuse the inference configuration through Deps:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "describe_fixture", Description: "Infer the schema of a fixture file"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in FixtureInput) (*mcp.CallToolResult, FixtureOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in FixtureInput) (*mcp.CallToolResult, FixtureOutput, error) {
//	            s := jsonschema.Infer(in.Value, d.InferOptions())
//	            return nil, FixtureOutput{Type: strings.Join(s.Types(), "|")}, nil
//	        }
//	    },
//	)
//
// # Configuration
//
// Configuration is read from JSONINFER_* and LOG_* environment variables and
// the optional file named by JSONINFER_CONFIG. Options override it:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithConfigFile("jsoninfer.yaml"),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/jsoninfer.log"),
//	)
package mcpsrv
