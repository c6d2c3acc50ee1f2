package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "churnlens://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "Summary of the loaded churn index artifact",
		MIMEType:    "application/json",
	}, s.handleIndexResource)
}

// handleIndexResource describes the loaded artifact: corpus size and
// the embedding model it was built with.
func (s *Server) handleIndexResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summary := struct {
		Documents int    `json:"documents"`
		ModelID   string `json:"model_id"`
	}{
		Documents: s.ports.Query.Size(),
		ModelID:   s.ports.Query.ModelID(),
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encoding index summary: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
