// Package mcp exposes evidence verification to AI assistants over the
// Model Context Protocol.
//
// Tools:
//   - verify_evidence: resolve and verify one or more evidence IDs or ledger references
//   - lookup_evidence: fetch a record without verifying it
//   - verify_record: verify a record supplied inline
//
// Resources list captures and the local archive.
package mcp

import "errors"

// ErrMissingInspectionService is returned when the inspection service is not provided.
var ErrMissingInspectionService = errors.New("mcp: inspection service is required")
