package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chainforensix-cli/internal/core/canonical"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// Ensure CaptureService implements the interface.
var _ driving.CaptureService = (*CaptureService)(nil)

// CaptureService drives a post from fetch through operator confirmation
// to a frozen, hashable record.
type CaptureService struct {
	posts      driven.PostSource
	classifier driven.Classifier
	store      driven.CaptureStore
	now        func() time.Time
}

// NewCaptureService creates a capture service. classifier may be nil.
func NewCaptureService(posts driven.PostSource, classifier driven.Classifier, store driven.CaptureStore) *CaptureService {
	return &CaptureService{
		posts:      posts,
		classifier: classifier,
		store:      store,
		now:        time.Now,
	}
}

// Start fetches a post and opens a capture for it.
func (s *CaptureService) Start(ctx context.Context, postID, expectedText string) (*domain.Capture, error) {
	if s.posts == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, fmt.Errorf("%w: post id is required", domain.ErrInvalidInput)
	}

	logger.Section("Capture")
	logger.Debug("Fetching post %s", postID)

	post, err := s.posts.FetchPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("fetch post %s: %w", postID, err)
	}

	// A plain post freezes on extraction, so its classification must be in
	// hand before the transition.
	if !post.RequiresConfirmation && post.Classifier == nil {
		post.Classifier = s.classify(ctx, post.Text, "")
	}

	now := s.now()
	c := domain.NewCapture(uuid.NewString(), postID, expectedText, now)
	if err := c.Extracted(*post, now); err != nil {
		return nil, err
	}
	if c.TextMismatch {
		logger.Warn("Fetched text for post %s differs from expected text", postID)
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save capture: %w", err)
	}
	logger.Debug("Capture %s is %s", c.ID, c.State)
	return c, nil
}

// Confirm freezes an awaiting capture with the operator-reviewed visual text.
func (s *CaptureService) Confirm(ctx context.Context, captureID, visualText string) (*domain.Capture, error) {
	c, err := s.Get(ctx, captureID)
	if err != nil {
		return nil, err
	}
	var result *domain.ClassifierResult
	if c.State == domain.CaptureAwaitingConfirmation {
		result = s.classify(ctx, c.Post.Text, strings.TrimSpace(visualText))
	}
	if err := c.Confirm(visualText, result, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save capture: %w", err)
	}
	return c, nil
}

// Prepare produces the canonical payload and hash of a confirmed capture.
func (s *CaptureService) Prepare(ctx context.Context, captureID string) (*driving.PreparedEvidence, error) {
	c, err := s.Get(ctx, captureID)
	if err != nil {
		return nil, err
	}
	confirmed, err := c.Confirmed()
	if err != nil {
		return nil, err
	}

	record := confirmed.Record()
	payload, err := canonical.Payload(&record)
	if err != nil {
		return nil, err
	}
	return &driving.PreparedEvidence{
		CaptureID: confirmed.CaptureID(),
		Record:    record,
		Payload:   payload,
		Hash:      canonical.Digest(payload),
	}, nil
}

// Get retrieves a capture.
func (s *CaptureService) Get(ctx context.Context, captureID string) (*domain.Capture, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	c, err := s.store.Get(ctx, captureID)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", captureID, err)
	}
	return c, nil
}

// List returns all captures.
func (s *CaptureService) List(ctx context.Context) ([]domain.Capture, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Discard deletes a capture.
func (s *CaptureService) Discard(ctx context.Context, captureID string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Delete(ctx, captureID)
}

// classify returns nil when no classifier is configured or it fails.
// A capture is never blocked on classification.
func (s *CaptureService) classify(ctx context.Context, text, visual string) *domain.ClassifierResult {
	if s.classifier == nil {
		return nil
	}
	result, err := s.classifier.Classify(ctx, text, visual)
	if err != nil {
		logger.Warn("Classification failed: %v", err)
		return nil
	}
	return result
}
