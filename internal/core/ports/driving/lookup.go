package driving

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// LookupService resolves evidence records from the configured store.
type LookupService interface {
	// ResolveByID fetches a record by evidence ID.
	ResolveByID(ctx context.Context, id uint64) (*domain.EvidenceRecord, error)

	// ResolveByLedgerReference validates ref and fetches the record it anchors.
	// Malformed references fail with domain.ErrInvalidReference before any lookup.
	ResolveByLedgerReference(ctx context.Context, ref string) (*domain.EvidenceRecord, error)

	// Resolve accepts either form and dispatches accordingly.
	Resolve(ctx context.Context, input string) (*domain.EvidenceRecord, error)

	// IDForReference returns the evidence ID anchored by ref.
	IDForReference(ctx context.Context, ref string) (uint64, error)

	// ReferenceForID returns the ledger reference of evidence id.
	// Returns domain.ErrNotAnchored when the record has none.
	ReferenceForID(ctx context.Context, id uint64) (string, error)
}
