package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// fakeMetrics records observations.
type fakeMetrics struct {
	mu       sync.Mutex
	verdicts []domain.Verdict
	lookups  []string
}

func (m *fakeMetrics) ObserveVerdict(v domain.Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verdicts = append(m.verdicts, v)
}

func (m *fakeMetrics) ObserveLookup(kind, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups = append(m.lookups, kind+":"+outcome)
}

// scriptedStore returns queued errors before succeeding and counts calls.
type scriptedStore struct {
	mu      sync.Mutex
	records map[uint64]*domain.EvidenceRecord
	byRef   map[string]uint64
	errs    []error
	calls   int
	delay   time.Duration

	// gate, when set, holds every call until it is closed.
	gate chan struct{}
}

func newScriptedStore(records ...*domain.EvidenceRecord) *scriptedStore {
	s := &scriptedStore{
		records: make(map[uint64]*domain.EvidenceRecord),
		byRef:   make(map[string]uint64),
	}
	for _, r := range records {
		s.records[r.ID] = r
		if r.LedgerReference != "" {
			s.byRef[r.LedgerReference] = r.ID
		}
	}
	return s
}

func (s *scriptedStore) next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func (s *scriptedStore) wait(ctx context.Context) error {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return domain.ErrUnavailable
		}
	}
	if s.delay == 0 {
		return nil
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return domain.ErrUnavailable
	}
}

func (s *scriptedStore) GetByID(ctx context.Context, id uint64) (*domain.EvidenceRecord, error) {
	if err := s.next(); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *scriptedStore) GetByLedgerReference(ctx context.Context, ref string) (*domain.EvidenceRecord, error) {
	if err := s.next(); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byRef[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s.records[id]
	return &cp, nil
}

func (s *scriptedStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
