package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// ArchiveService manages the local, create-only evidence archive.
type ArchiveService struct {
	archive driven.EvidenceArchive
}

// NewArchiveService creates an archive service.
func NewArchiveService(archive driven.EvidenceArchive) *ArchiveService {
	return &ArchiveService{archive: archive}
}

// Import validates and stores a record.
// Records are kept exactly as exported so later verification sees what the backend reported.
func (s *ArchiveService) Import(ctx context.Context, record *domain.EvidenceRecord) error {
	if s.archive == nil {
		return domain.ErrNotImplemented
	}
	if record == nil {
		return domain.ErrNilRecord
	}
	if record.ID == 0 {
		return fmt.Errorf("%w: record has no id", domain.ErrInvalidEvidenceID)
	}
	if record.LedgerReference != "" {
		if _, err := domain.ParseLedgerReference(record.LedgerReference); err != nil {
			return err
		}
	}

	if err := s.archive.Import(ctx, record); err != nil {
		return fmt.Errorf("import evidence %d: %w", record.ID, err)
	}
	logger.Debug("Archived evidence %d", record.ID)
	return nil
}

// List returns archived records.
func (s *ArchiveService) List(ctx context.Context, limit int) ([]domain.EvidenceRecord, error) {
	if s.archive == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.archive.List(ctx, limit)
}
