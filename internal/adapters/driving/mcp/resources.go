package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/views"
)

const (
	uriScheme = "chainforensix://"

	// archiveListLimit bounds the archive resource.
	archiveListLimit = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Capture != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "captures",
			Name:        "captures",
			Description: "Captures in the visual-content confirmation workflow",
			MIMEType:    "application/json",
		}, s.handleCapturesResource)

		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "captures/{captureId}",
			Name:        "capture",
			Description: "A single capture",
			MIMEType:    "application/json",
		}, s.handleCaptureResource)
	}

	if s.ports.Archive != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "archive",
			Name:        "archive",
			Description: "Evidence records in the local archive",
			MIMEType:    "application/json",
		}, s.handleArchiveResource)
	}
}

// handleCapturesResource lists all captures.
func (s *Server) handleCapturesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	captures, err := s.ports.Capture.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing captures: %w", err)
	}

	out := make([]views.Capture, len(captures))
	for i := range captures {
		out[i] = views.FromCapture(&captures[i])
	}
	return jsonResource(req.Params.URI, out)
}

// handleCaptureResource returns one capture.
func (s *Server) handleCaptureResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractCaptureID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	c, err := s.ports.Capture.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, views.FromCapture(c))
}

// handleArchiveResource lists archived records.
func (s *Server) handleArchiveResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Archive.List(ctx, archiveListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing archive: %w", err)
	}

	out := make([]*views.Record, len(records))
	for i := range records {
		out[i] = views.FromRecord(&records[i])
	}
	return jsonResource(req.Params.URI, out)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCaptureID extracts the capture ID from chainforensix://captures/{captureId}.
func extractCaptureID(uri string) string {
	const prefix = uriScheme + "captures/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
