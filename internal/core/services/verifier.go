package services

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/custodia-labs/chainforensix-cli/internal/core/canonical"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// Ensure VerifierService implements the interface.
var _ driving.VerificationService = (*VerifierService)(nil)

// VerifierService recomputes canonical hashes and compares them with anchored ones.
// It is stateless and safe for concurrent use.
type VerifierService struct {
	metrics driven.Metrics
}

// NewVerifierService creates a verifier. metrics may be nil.
func NewVerifierService(metrics driven.Metrics) *VerifierService {
	return &VerifierService{metrics: metrics}
}

// Verify derives the verdict for a record.
//
// A record without content or source post ID is Unknown and no hash is computed.
// Content that is present but blank is still hashed when the record is anchored,
// so a wiped post reads as Tampered.
// A record without an anchored hash is Unknown, with the calculated hash reported.
// An anchored hash that is not a 32-byte hex digest can never match, so it is Tampered.
func (s *VerifierService) Verify(record *domain.EvidenceRecord) (*domain.Verification, error) {
	if record == nil {
		return nil, domain.ErrNilRecord
	}

	v := s.verify(record)
	logger.Debug("Verify post=%q verdict=%s reason=%q", record.SourcePostID, v.Verdict, v.Reason)
	if s.metrics != nil {
		s.metrics.ObserveVerdict(v.Verdict)
	}
	return v, nil
}

func (s *VerifierService) verify(record *domain.EvidenceRecord) *domain.Verification {
	v := &domain.Verification{
		Verdict:      domain.VerdictUnknown,
		AnchoredHash: record.AnchoredHash,
	}

	blank := strings.TrimSpace(record.Content) == ""
	if !record.HasContent || (blank && !record.HasAnchor()) {
		v.Reason = domain.ReasonMissingContent
		return v
	}
	if strings.TrimSpace(record.SourcePostID) == "" {
		v.Reason = domain.ReasonMissingPostID
		return v
	}

	calculated, err := canonical.Hash(record)
	if err != nil {
		v.Reason = fmt.Sprintf("canonical payload: %v", err)
		return v
	}
	v.CalculatedHash = calculated

	if !record.HasAnchor() {
		v.Reason = domain.ReasonMissingAnchor
		return v
	}

	if !domain.IsDigest(record.AnchoredHash) {
		v.Verdict = domain.VerdictTampered
		v.Reason = domain.ReasonMalformedAnchor
		return v
	}

	if hashesEqual(calculated, record.AnchoredHash) {
		v.Verdict = domain.VerdictVerified
		v.Reason = domain.ReasonHashesMatch
		return v
	}
	v.Verdict = domain.VerdictTampered
	v.Reason = domain.ReasonHashesDiffer
	return v
}

// hashesEqual compares two hex digests in constant time after normalisation.
func hashesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(domain.NormalizeHash(a)), []byte(domain.NormalizeHash(b))) == 1
}
