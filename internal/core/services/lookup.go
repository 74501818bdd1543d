package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// Lookup kinds reported to metrics.
const (
	lookupKindID        = "id"
	lookupKindReference = "reference"
)

// maxBackoff caps the delay between retries.
const maxBackoff = 30 * time.Second

// LookupOptions tunes retries for transient store failures.
type LookupOptions struct {
	// MaxAttempts is the total number of tries. Values below 1 mean 1.
	MaxAttempts int

	// Backoff is the delay before the first retry; it doubles each retry
	// up to maxBackoff.
	Backoff time.Duration

	// Timeout bounds each attempt. Zero disables the per-attempt deadline.
	Timeout time.Duration
}

// LookupOptionsFromSettings derives lookup options from application settings.
func LookupOptionsFromSettings(s *domain.AppSettings) LookupOptions {
	return LookupOptions{
		MaxAttempts: s.Lookup.MaxAttempts,
		Backoff:     s.Lookup.Backoff,
		Timeout:     s.API.Timeout,
	}
}

// LookupService resolves evidence records from an evidence store.
//
// Only domain.ErrUnavailable is retried. Not-found and unauthorized responses
// are returned on the first attempt. Concurrent lookups for the same key share
// a single store call.
type LookupService struct {
	store   driven.EvidenceStore
	metrics driven.Metrics
	opts    LookupOptions
	group   singleflight.Group
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewLookupService creates a lookup service. metrics may be nil.
func NewLookupService(store driven.EvidenceStore, metrics driven.Metrics, opts LookupOptions) *LookupService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &LookupService{
		store:   store,
		metrics: metrics,
		opts:    opts,
		sleep:   sleepContext,
	}
}

// ResolveByID fetches a record by evidence ID.
func (s *LookupService) ResolveByID(ctx context.Context, id uint64) (*domain.EvidenceRecord, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	key := lookupKindID + ":" + strconv.FormatUint(id, 10)
	return s.do(ctx, lookupKindID, key, func(ctx context.Context) (*domain.EvidenceRecord, error) {
		return s.store.GetByID(ctx, id)
	})
}

// ResolveByLedgerReference validates ref and fetches the record it anchors.
// The reference reaches the store exactly as given.
func (s *LookupService) ResolveByLedgerReference(ctx context.Context, ref string) (*domain.EvidenceRecord, error) {
	ref, err := domain.ParseLedgerReference(ref)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	key := lookupKindReference + ":" + strings.ToLower(ref)
	return s.do(ctx, lookupKindReference, key, func(ctx context.Context) (*domain.EvidenceRecord, error) {
		return s.store.GetByLedgerReference(ctx, ref)
	})
}

// Resolve dispatches on the input form: 0x-prefixed input is a ledger
// reference, anything else must be a numeric evidence ID.
func (s *LookupService) Resolve(ctx context.Context, input string) (*domain.EvidenceRecord, error) {
	input = strings.TrimSpace(input)
	if domain.LooksLikeLedgerReference(input) {
		return s.ResolveByLedgerReference(ctx, input)
	}
	id, err := domain.ParseEvidenceID(input)
	if err != nil {
		return nil, err
	}
	return s.ResolveByID(ctx, id)
}

// IDForReference returns the evidence ID anchored by ref.
func (s *LookupService) IDForReference(ctx context.Context, ref string) (uint64, error) {
	rec, err := s.ResolveByLedgerReference(ctx, ref)
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// ReferenceForID returns the ledger reference of evidence id.
func (s *LookupService) ReferenceForID(ctx context.Context, id uint64) (string, error) {
	rec, err := s.ResolveByID(ctx, id)
	if err != nil {
		return "", err
	}
	if rec.LedgerReference == "" {
		return "", fmt.Errorf("evidence %d: %w", id, domain.ErrNotAnchored)
	}
	return rec.LedgerReference, nil
}

func (s *LookupService) do(
	ctx context.Context,
	kind, key string,
	fetch func(context.Context) (*domain.EvidenceRecord, error),
) (*domain.EvidenceRecord, error) {
	logger.Section("Evidence Lookup")
	logger.Debug("Key: %s", key)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	// The shared call outlives any single caller; each caller stops waiting
	// when its own context ends.
	flight := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.retry(flight, key, fetch)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Shared {
		logger.Debug("Shared in-flight lookup for %s", key)
	}
	s.observe(kind, res.Err, time.Since(start))
	if res.Err != nil {
		return nil, res.Err
	}

	// Callers may mutate the record; never hand out the shared pointer.
	rec := *res.Val.(*domain.EvidenceRecord)
	rec.MediaReferences = append([]string(nil), rec.MediaReferences...)
	return &rec, nil
}

func (s *LookupService) retry(
	ctx context.Context,
	key string,
	fetch func(context.Context) (*domain.EvidenceRecord, error),
) (*domain.EvidenceRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		rec, err := s.attempt(ctx, fetch)
		if err == nil {
			logger.Debug("Resolved %s on attempt %d", key, attempt)
			return rec, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		if !domain.IsRetryable(err) {
			return nil, err
		}
		if attempt == s.opts.MaxAttempts {
			break
		}

		delay := backoffDelay(s.opts.Backoff, attempt)
		logger.Warn("Attempt %d/%d for %s failed: %v (retrying in %s)", attempt, s.opts.MaxAttempts, key, err, delay)
		if err := s.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", s.opts.MaxAttempts, lastErr)
}

func (s *LookupService) attempt(
	ctx context.Context,
	fetch func(context.Context) (*domain.EvidenceRecord, error),
) (*domain.EvidenceRecord, error) {
	actx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	rec, err := fetch(actx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(actx.Err(), context.DeadlineExceeded) && !domain.IsRetryable(err) {
			return nil, fmt.Errorf("%w: attempt timed out after %s", domain.ErrUnavailable, s.opts.Timeout)
		}
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (s *LookupService) observe(kind string, err error, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		if status, ok := domain.StatusForLookupError(err); ok {
			outcome = string(status)
		} else {
			outcome = "error"
		}
	}
	s.metrics.ObserveLookup(kind, outcome, elapsed)
}

// backoffDelay doubles base for each retry, capped at maxBackoff.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= maxBackoff/2 {
			return maxBackoff
		}
		delay *= 2
	}
	return min(delay, maxBackoff)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
