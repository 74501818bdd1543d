package driving

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// ArchiveService manages the local evidence archive.
type ArchiveService interface {
	// Import archives a record exported from the backend.
	Import(ctx context.Context, record *domain.EvidenceRecord) error

	// List returns archived records.
	List(ctx context.Context, limit int) ([]domain.EvidenceRecord, error)
}
