package driven

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// EvidenceStore reads anchored evidence records.
// Implementations map transport failures to domain.ErrNotFound,
// domain.ErrUnauthorized or domain.ErrUnavailable.
type EvidenceStore interface {
	// GetByID retrieves a record by its evidence identifier.
	GetByID(ctx context.Context, id uint64) (*domain.EvidenceRecord, error)

	// GetByLedgerReference retrieves a record by the transaction that anchored it.
	// The reference has already been validated by the caller.
	GetByLedgerReference(ctx context.Context, ref string) (*domain.EvidenceRecord, error)
}

// EvidenceArchive is a local evidence store that also accepts imports.
// Records are create-only: there is no update or delete.
type EvidenceArchive interface {
	EvidenceStore

	// Import stores a record. Returns domain.ErrAlreadyExists if the ID or
	// ledger reference is already archived.
	Import(ctx context.Context, record *domain.EvidenceRecord) error

	// List returns archived records ordered by ID.
	List(ctx context.Context, limit int) ([]domain.EvidenceRecord, error)
}
