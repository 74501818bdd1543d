package mcp

import (
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Inspection resolves and verifies evidence.
	Inspection driving.InspectionService

	// Lookup fetches records without verifying them.
	Lookup driving.LookupService

	// Capture exposes the capture workflow as resources.
	Capture driving.CaptureService

	// Archive exposes the local archive as a resource.
	Archive driving.ArchiveService

	// ExplorerLink builds block explorer URLs. Optional.
	ExplorerLink func(ref string) string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Inspection == nil {
		return ErrMissingInspectionService
	}
	return nil
}
