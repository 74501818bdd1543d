package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
)

// Ensure EvidenceStore implements the interface.
var _ driven.EvidenceArchive = (*EvidenceStore)(nil)

// EvidenceStore is an in-memory implementation of driven.EvidenceArchive.
type EvidenceStore struct {
	mu      sync.RWMutex
	records map[uint64]domain.EvidenceRecord
	byRef   map[string]uint64
}

// NewEvidenceStore creates a new in-memory evidence store.
func NewEvidenceStore() *EvidenceStore {
	return &EvidenceStore{
		records: make(map[uint64]domain.EvidenceRecord),
		byRef:   make(map[string]uint64),
	}
}

// GetByID retrieves a record by evidence ID.
func (s *EvidenceStore) GetByID(_ context.Context, id uint64) (*domain.EvidenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r = cloneRecord(r)
	return &r, nil
}

// GetByLedgerReference retrieves a record by ledger reference, ignoring case.
func (s *EvidenceStore) GetByLedgerReference(_ context.Context, ref string) (*domain.EvidenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byRef[strings.ToLower(ref)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r := cloneRecord(s.records[id])
	return &r, nil
}

// Import stores a record. Records cannot be replaced.
func (s *EvidenceStore) Import(_ context.Context, record *domain.EvidenceRecord) error {
	if record == nil {
		return domain.ErrNilRecord
	}
	if record.ID == 0 {
		return domain.ErrInvalidEvidenceID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ID]; ok {
		return domain.ErrAlreadyExists
	}
	ref := strings.ToLower(record.LedgerReference)
	if ref != "" {
		if _, ok := s.byRef[ref]; ok {
			return domain.ErrAlreadyExists
		}
		s.byRef[ref] = record.ID
	}
	s.records[record.ID] = cloneRecord(*record)
	return nil
}

// List returns records ordered by ID. A limit of 0 or less returns all.
func (s *EvidenceStore) List(_ context.Context, limit int) ([]domain.EvidenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EvidenceRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, cloneRecord(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneRecord(r domain.EvidenceRecord) domain.EvidenceRecord {
	r.MediaReferences = append([]string(nil), r.MediaReferences...)
	if r.Classifier != nil {
		c := *r.Classifier
		if c.Scores != nil {
			c.Scores = make(map[string]float64, len(r.Classifier.Scores))
			for k, v := range r.Classifier.Scores {
				c.Scores[k] = v
			}
		}
		r.Classifier = &c
	}
	return r
}
