// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EvidenceStore: Evidence record lookups (backend API or local archive)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EvidenceArchive: Local import and listing. Without it, archive commands are disabled.
//   - CaptureStore: Capture persistence. Without it, the capture workflow is disabled.
//   - PostSource: Post scraping. Without it, captures cannot be started.
//   - Classifier: Content classification. Captures confirm without a result.
//   - LedgerClient: Independent ledger checks. Inspections skip the ledger step.
//   - Metrics: Observation sink. Services skip observations.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
