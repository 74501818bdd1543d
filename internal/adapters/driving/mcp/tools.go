package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/views"
)

// maxBatch bounds verify_evidence inputs.
const maxBatch = 50

// VerifyInput is the input schema for the verify_evidence tool.
type VerifyInput struct {
	Inputs []string `json:"inputs" jsonschema:"evidence IDs or 0x-prefixed ledger references to verify"`
}

// VerifyOutput is the output schema for the verify_evidence tool.
type VerifyOutput struct {
	Results  []views.Inspection `json:"results"`
	Tampered int                `json:"tampered"`
}

// LookupInput is the input schema for the lookup_evidence tool.
type LookupInput struct {
	Input string `json:"input" jsonschema:"an evidence ID or 0x-prefixed ledger reference"`
}

// LookupOutput is the output schema for the lookup_evidence tool.
type LookupOutput struct {
	Record views.Record `json:"record"`
}

// VerifyRecordInput is the input schema for the verify_record tool.
type VerifyRecordInput struct {
	Record views.Record `json:"record" jsonschema:"the evidence record to verify"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "verify_evidence",
		Description: "Resolve evidence by ID or ledger reference and verify its integrity. " +
			"A tampered verdict means the stored content no longer matches its anchored hash.",
	}, s.handleVerify)

	if s.ports.Lookup != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "lookup_evidence",
			Description: "Fetch an evidence record by ID or ledger reference without verifying it",
		}, s.handleLookup)
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "verify_record",
		Description: "Verify an evidence record supplied inline against its anchored hash",
	}, s.handleVerifyRecord)
}

// handleVerify handles the verify_evidence tool invocation.
func (s *Server) handleVerify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyInput,
) (*mcp.CallToolResult, VerifyOutput, error) {
	inputs := make([]string, 0, len(input.Inputs))
	for _, in := range input.Inputs {
		if in = strings.TrimSpace(in); in != "" {
			inputs = append(inputs, in)
		}
	}
	if len(inputs) == 0 {
		return nil, VerifyOutput{}, errors.New("at least one input is required")
	}
	if len(inputs) > maxBatch {
		return nil, VerifyOutput{}, fmt.Errorf("at most %d inputs per call", maxBatch)
	}

	results, err := s.ports.Inspection.InspectMany(ctx, inputs)
	if err != nil {
		return nil, VerifyOutput{}, err
	}

	output := VerifyOutput{Results: make([]views.Inspection, len(results))}
	for i, r := range results {
		output.Results[i] = views.FromInspection(r, s.ports.ExplorerLink)
		if output.Results[i].Verdict == "tampered" {
			output.Tampered++
		}
	}
	return nil, output, nil
}

// handleLookup handles the lookup_evidence tool invocation.
func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	rec, err := s.ports.Lookup.Resolve(ctx, input.Input)
	if err != nil {
		return nil, LookupOutput{}, err
	}
	return nil, LookupOutput{Record: *views.FromRecord(rec)}, nil
}

// handleVerifyRecord handles the verify_record tool invocation.
func (s *Server) handleVerifyRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyRecordInput,
) (*mcp.CallToolResult, views.Inspection, error) {
	rec, err := input.Record.ToDomain()
	if err != nil {
		return nil, views.Inspection{}, err
	}
	result, err := s.ports.Inspection.VerifyRecord(ctx, rec)
	if err != nil {
		return nil, views.Inspection{}, err
	}
	return nil, views.FromInspection(result, s.ports.ExplorerLink), nil
}
