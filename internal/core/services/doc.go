// Package services holds the verification core: resolving identifiers
// against an evidence store with retry, re-deriving anchored hashes, the
// capture workflow, and the local archive. Each service implements a port
// from internal/core/ports/driving and talks to the outside world only
// through internal/core/ports/driven.
package services
