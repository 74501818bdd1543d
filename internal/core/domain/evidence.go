package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EvidenceRecord is an anchored piece of evidence as reported by the evidence store.
// Records are immutable once anchored: stores only create and read them.
type EvidenceRecord struct {
	// ID is the identifier assigned by the store at anchoring time.
	ID uint64

	// SourcePostID identifies the original scraped post.
	SourcePostID string

	// Content is the post text, optionally followed by a visual segment.
	Content string

	// HasContent is false when the store delivered no content field at all.
	HasContent bool

	// Author is the post author's handle.
	Author string

	// CreatedAt is when the post was published.
	CreatedAt time.Time

	// MediaReferences are URIs of attached media, in original order.
	MediaReferences []string

	// Classifier is the optional AI classifier output.
	Classifier *ClassifierResult

	// AnchoredHash is the hash recorded at anchoring time. Empty if never anchored.
	AnchoredHash string

	// LedgerReference is the public ledger transaction carrying AnchoredHash.
	LedgerReference string
}

// HasAnchor reports whether the record carries an anchored hash.
func (r *EvidenceRecord) HasAnchor() bool {
	return strings.TrimSpace(r.AnchoredHash) != ""
}

// ClassifierResult is the structured output of the defamation classifier.
type ClassifierResult struct {
	// Category is the primary label (e.g. "Safe", "Defamatory", "Hate Speech").
	Category string

	// Confidence is the primary label's probability in [0, 1].
	Confidence float64

	// Justification is the classifier's explanation.
	Justification string

	// Scores holds per-category probabilities.
	Scores map[string]float64
}

// IsFlagged reports whether the classifier flagged the content.
func (c *ClassifierResult) IsFlagged() bool {
	if c == nil {
		return false
	}
	switch strings.ToLower(c.Category) {
	case "", "safe", "neutral":
		return false
	default:
		return true
	}
}

// ParseEvidenceID parses a user-supplied evidence identifier.
func ParseEvidenceID(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidEvidenceID)
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEvidenceID, s)
	}
	return id, nil
}
