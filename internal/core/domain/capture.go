package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// VisualContentMarker separates post text from operator-confirmed visual text.
const VisualContentMarker = "\n[Visual Content]: "

// CaptureState is a step of the visual-content confirmation workflow.
type CaptureState string

// Capture states. Transitions only move forward:
// pending_extraction -> awaiting_confirmation -> confirmed,
// or pending_extraction -> confirmed when the post has no embedded text.
const (
	CapturePendingExtraction    CaptureState = "pending_extraction"
	CaptureAwaitingConfirmation CaptureState = "awaiting_confirmation"
	CaptureConfirmed            CaptureState = "confirmed"
)

// IsValid returns true if the state is recognised.
func (s CaptureState) IsValid() bool {
	switch s {
	case CapturePendingExtraction, CaptureAwaitingConfirmation, CaptureConfirmed:
		return true
	default:
		return false
	}
}

// Post is a scraped social-media post as returned by the backend.
type Post struct {
	ID        string
	Text      string
	Author    string
	CreatedAt time.Time
	MediaURLs []string

	// RequiresConfirmation is set when attached media carries extracted text.
	RequiresConfirmation bool

	// VisualText is the OCR output awaiting review.
	VisualText string

	// VisualStatus is the extraction service status (e.g. "no_text_detected").
	VisualStatus string

	// Classifier is set when the backend already classified the post.
	Classifier *ClassifierResult
}

// Capture tracks a post from fetch until its content is frozen for anchoring.
type Capture struct {
	ID     string
	PostID string
	State  CaptureState
	Post   Post

	// ExpectedText is the operator-supplied text the post was fetched for.
	ExpectedText string

	// TextMismatch is set when ExpectedText differs from the fetched text.
	TextMismatch bool

	// ExtractedText is the OCR output presented for review.
	ExtractedText string

	// Content is the frozen content. Only meaningful once confirmed.
	Content string

	Classifier *ClassifierResult

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCapture starts a capture in the pending-extraction state.
func NewCapture(id, postID, expectedText string, now time.Time) *Capture {
	return &Capture{
		ID:           id,
		PostID:       postID,
		State:        CapturePendingExtraction,
		ExpectedText: expectedText,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Extracted records the fetched post. Posts without embedded text freeze immediately.
func (c *Capture) Extracted(post Post, now time.Time) error {
	if c.State != CapturePendingExtraction {
		return fmt.Errorf("%w: extracted from %s", ErrInvalidTransition, c.State)
	}
	c.Post = post
	c.Classifier = post.Classifier
	if c.ExpectedText != "" {
		c.TextMismatch = NormalizeText(c.ExpectedText) != NormalizeText(post.Text)
	}
	c.UpdatedAt = now

	if post.RequiresConfirmation {
		c.ExtractedText = post.VisualText
		c.State = CaptureAwaitingConfirmation
		return nil
	}
	c.Content = post.Text
	c.State = CaptureConfirmed
	return nil
}

// Confirm freezes the content with the operator's (possibly edited) visual text.
// classifier, when non-nil, replaces the extraction-time result; nothing can
// change either once the capture is confirmed.
func (c *Capture) Confirm(visualText string, classifier *ClassifierResult, now time.Time) error {
	if c.State != CaptureAwaitingConfirmation {
		return fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, c.State)
	}
	c.Content = AppendVisualContent(c.Post.Text, strings.TrimSpace(visualText))
	if classifier != nil {
		c.Classifier = classifier
	}
	c.State = CaptureConfirmed
	c.UpdatedAt = now
	return nil
}

// Confirmed returns the frozen view of the capture.
// It is the only way to obtain a record eligible for hashing and anchoring.
func (c *Capture) Confirmed() (*ConfirmedCapture, error) {
	if c.State != CaptureConfirmed {
		return nil, fmt.Errorf("%w: %s is not confirmed", ErrInvalidTransition, c.ID)
	}
	media := make([]string, len(c.Post.MediaURLs))
	copy(media, c.Post.MediaURLs)
	return &ConfirmedCapture{
		captureID: c.ID,
		record: EvidenceRecord{
			SourcePostID:    c.Post.ID,
			Content:         c.Content,
			HasContent:      true,
			Author:          c.Post.Author,
			CreatedAt:       c.Post.CreatedAt,
			MediaReferences: media,
			Classifier:      c.Classifier,
		},
	}, nil
}

// ConfirmedCapture is a capture whose content can no longer change.
type ConfirmedCapture struct {
	captureID string
	record    EvidenceRecord
}

// CaptureID returns the capture identifier.
func (c *ConfirmedCapture) CaptureID() string {
	return c.captureID
}

// Record returns a copy of the evidence record to be anchored.
func (c *ConfirmedCapture) Record() EvidenceRecord {
	r := c.record
	r.MediaReferences = append([]string(nil), c.record.MediaReferences...)
	return r
}

// AppendVisualContent appends the visual segment, replacing any earlier one.
func AppendVisualContent(text, visual string) string {
	if visual == "" {
		return text
	}
	if i := strings.Index(text, VisualContentMarker); i >= 0 {
		text = text[:i]
	}
	return text + VisualContentMarker + visual
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeText lowercases and collapses whitespace for text-match checks.
func NormalizeText(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}
