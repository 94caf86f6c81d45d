package mcp

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/jsoninfer/internal/mcp/tools"
	"github.com/usestring/jsoninfer/pkg/jsonschema"
)

// DraftsURI lists the JSON Schema drafts the tools can target.
const DraftsURI = "jsoninfer://drafts"

// draftsContent is the body of the drafts resource.
type draftsContent struct {
	Default string             `json:"default"`
	Drafts  []jsonschema.Draft `json:"drafts"`
}

// registerResources registers the static resources.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         DraftsURI,
		Name:        "JSON Schema Drafts",
		Description: "Draft names accepted by the draft argument of infer_schema and merge_schemas, with their $schema URIs. The default reflects server configuration.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceDrafts)
}

func (s *Server) handleResourceDrafts(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	if req.Params.URI != DraftsURI {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	def, err := jsonschema.ParseDraft(s.deps.Config.Draft)
	if err != nil {
		def = jsonschema.DefaultDraft
	}

	return toResourceResult(req.Params.URI, draftsContent{
		Default: def,
		Drafts:  jsonschema.Drafts(),
	})
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
