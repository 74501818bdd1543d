// Package domain defines the core business entities for chainforensix.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - EvidenceRecord: An anchored post as reported by the evidence store
//   - Verification: The derived verdict for a record
//   - Inspection: Lookup outcome plus verification, as shown to users
//   - Capture: The visual-content confirmation state machine
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
