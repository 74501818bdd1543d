package driving

import "github.com/custodia-labs/chainforensix-cli/internal/core/domain"

// VerificationService derives verdicts for evidence records.
type VerificationService interface {
	// Verify recomputes the canonical hash and compares it with the anchored hash.
	// Returns domain.ErrNilRecord for a nil record; every other input yields a verdict.
	Verify(record *domain.EvidenceRecord) (*domain.Verification, error)
}
