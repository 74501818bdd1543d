package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
)

// Ensure CaptureStore implements the interface.
var _ driven.CaptureStore = (*CaptureStore)(nil)

// CaptureStore is an in-memory implementation of driven.CaptureStore.
type CaptureStore struct {
	mu       sync.RWMutex
	captures map[string]domain.Capture
}

// NewCaptureStore creates a new in-memory capture store.
func NewCaptureStore() *CaptureStore {
	return &CaptureStore{
		captures: make(map[string]domain.Capture),
	}
}

// Save stores or updates a capture.
func (s *CaptureStore) Save(_ context.Context, capture *domain.Capture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captures[capture.ID] = cloneCapture(*capture)
	return nil
}

// Get retrieves a capture by ID.
func (s *CaptureStore) Get(_ context.Context, id string) (*domain.Capture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.captures[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c = cloneCapture(c)
	return &c, nil
}

// List returns captures, most recently updated first.
func (s *CaptureStore) List(_ context.Context) ([]domain.Capture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Capture, 0, len(s.captures))
	for _, c := range s.captures {
		out = append(out, cloneCapture(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a capture.
func (s *CaptureStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.captures[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.captures, id)
	return nil
}

func cloneCapture(c domain.Capture) domain.Capture {
	c.Post.MediaURLs = append([]string(nil), c.Post.MediaURLs...)
	return c
}
