package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// Ensure InspectionService implements the interface.
var _ driving.InspectionService = (*InspectionService)(nil)

// defaultInspectConcurrency bounds InspectMany fan-out.
const defaultInspectConcurrency = 4

// InspectionService resolves evidence and verifies it, optionally
// cross-checking the anchoring transaction on the ledger.
type InspectionService struct {
	lookup      driving.LookupService
	verifier    driving.VerificationService
	ledger      driven.LedgerClient
	concurrency int
}

// NewInspectionService creates an inspection service. ledger may be nil.
func NewInspectionService(
	lookup driving.LookupService,
	verifier driving.VerificationService,
	ledger driven.LedgerClient,
) *InspectionService {
	return &InspectionService{
		lookup:      lookup,
		verifier:    verifier,
		ledger:      ledger,
		concurrency: defaultInspectConcurrency,
	}
}

// SetConcurrency changes the InspectMany bound. Values below 1 are ignored.
func (s *InspectionService) SetConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// Inspect resolves input and verifies the record.
//
// Store failures come back as an inspection with a failure status. Only
// malformed input, a missing store and the caller's own cancellation are
// returned as errors.
func (s *InspectionService) Inspect(ctx context.Context, input string) (*domain.Inspection, error) {
	input = strings.TrimSpace(input)
	rec, err := s.lookup.Resolve(ctx, input)
	if err != nil {
		status, ok := domain.StatusForLookupError(err)
		if !ok {
			if isInputError(err) || errors.Is(err, domain.ErrNotImplemented) || ctx.Err() != nil {
				return nil, err
			}
			logger.Warn("Lookup of %q failed with an unclassified store error: %v", input, err)
			status = domain.StatusUnavailable
		}
		logger.Info("Lookup of %q failed: %s", input, status)
		return &domain.Inspection{Input: input, Status: status, Err: err}, nil
	}

	insp, err := s.VerifyRecord(ctx, rec)
	if err != nil {
		return nil, err
	}
	insp.Input = input
	return insp, nil
}

// InspectMany inspects inputs concurrently. Results keep input order.
// A failed input never discards the results of the others; the batch
// only fails when ctx ends or no store is configured.
func (s *InspectionService) InspectMany(ctx context.Context, inputs []string) ([]*domain.Inspection, error) {
	results := make([]*domain.Inspection, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			insp, err := s.Inspect(gctx, input)
			switch {
			case err == nil:
				results[i] = insp
			case isInputError(err):
				results[i] = &domain.Inspection{Input: input, Status: domain.StatusInvalidInput, Err: err}
			default:
				return fmt.Errorf("inspect %q: %w", input, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// VerifyRecord verifies a record already in hand and runs the ledger check.
func (s *InspectionService) VerifyRecord(ctx context.Context, record *domain.EvidenceRecord) (*domain.Inspection, error) {
	v, err := s.verifier.Verify(record)
	if err != nil {
		return nil, err
	}
	insp := &domain.Inspection{
		Input:        record.LedgerReference,
		Status:       domain.StatusForVerdict(v.Verdict),
		Record:       record,
		Verification: v,
	}
	if record.ID != 0 {
		insp.Input = strconv.FormatUint(record.ID, 10)
	}
	insp.Ledger = s.checkLedger(ctx, record)
	return insp, nil
}

// checkLedger never alters the verdict; it only annotates the inspection.
func (s *InspectionService) checkLedger(ctx context.Context, record *domain.EvidenceRecord) *domain.LedgerCheck {
	if s.ledger == nil || record.LedgerReference == "" || !record.HasAnchor() {
		return nil
	}
	ref, err := domain.ParseLedgerReference(record.LedgerReference)
	if err != nil {
		return &domain.LedgerCheck{
			Status:    domain.LedgerFailed,
			Reference: record.LedgerReference,
			Detail:    err.Error(),
		}
	}

	check, err := s.ledger.Check(ctx, ref, record.AnchoredHash)
	if err != nil {
		logger.Warn("Ledger check for %s failed: %v", ref, err)
		return &domain.LedgerCheck{
			Status:    domain.LedgerUnavailable,
			Reference: ref,
			Detail:    err.Error(),
		}
	}
	logger.Debug("Ledger check for %s: %s", ref, check.Status)
	return check
}

func isInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidReference) ||
		errors.Is(err, domain.ErrInvalidEvidenceID) ||
		errors.Is(err, domain.ErrInvalidInput)
}
