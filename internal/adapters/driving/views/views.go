// Package views holds the JSON shapes shared by the MCP, REST and CLI adapters.
package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
)

// Classifier is the classifier output.
type Classifier struct {
	Category      string             `json:"category" jsonschema:"primary label"`
	Confidence    float64            `json:"confidence" jsonschema:"probability of the primary label"`
	Justification string             `json:"justification,omitempty"`
	Scores        map[string]float64 `json:"scores,omitempty"`
	Flagged       bool               `json:"flagged"`
}

// Record is an evidence record.
type Record struct {
	ID              uint64      `json:"id,omitempty" jsonschema:"evidence id assigned by the store"`
	SourcePostID    string      `json:"source_post_id" jsonschema:"identifier of the original post"`
	Content         *string     `json:"content,omitempty" jsonschema:"post text; omit when the store delivered none"`
	Author          string      `json:"author,omitempty"`
	CreatedAt       string      `json:"created_at,omitempty" jsonschema:"RFC 3339 publication time"`
	MediaReferences []string    `json:"media_references,omitempty" jsonschema:"media URIs in original order"`
	Classifier      *Classifier `json:"classifier,omitempty"`
	AnchoredHash    string      `json:"anchored_hash,omitempty" jsonschema:"hex SHA-256 recorded at anchoring time"`
	LedgerReference string      `json:"ledger_reference,omitempty" jsonschema:"0x-prefixed transaction hash"`
}

// Ledger is an independent ledger check.
type Ledger struct {
	Status      string `json:"status"`
	BlockNumber uint64 `json:"block_number,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Inspection is the outcome of resolving and verifying one identifier.
type Inspection struct {
	Input          string  `json:"input,omitempty"`
	Status         string  `json:"status"`
	Verdict        string  `json:"verdict,omitempty"`
	Authentic      bool    `json:"authentic"`
	CalculatedHash string  `json:"calculated_hash,omitempty"`
	AnchoredHash   string  `json:"anchored_hash,omitempty"`
	Reason         string  `json:"reason,omitempty"`
	Record         *Record `json:"record,omitempty"`
	Ledger         *Ledger `json:"ledger,omitempty"`
	ExplorerLink   string  `json:"explorer_link,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// Capture is a capture workflow entry.
type Capture struct {
	ID            string      `json:"id"`
	PostID        string      `json:"post_id"`
	State         string      `json:"state"`
	Text          string      `json:"text"`
	Author        string      `json:"author,omitempty"`
	ExtractedText string      `json:"extracted_text,omitempty"`
	Content       string      `json:"content,omitempty"`
	TextMismatch  bool        `json:"text_mismatch"`
	Classifier    *Classifier `json:"classifier,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Prepared is a confirmed capture ready to anchor.
type Prepared struct {
	CaptureID string `json:"capture_id"`
	Hash      string `json:"hash"`
	Payload   string `json:"payload"`
	Record    Record `json:"record"`
}

// FromClassifier converts a classifier result. Returns nil for nil.
func FromClassifier(c *domain.ClassifierResult) *Classifier {
	if c == nil {
		return nil
	}
	return &Classifier{
		Category:      c.Category,
		Confidence:    c.Confidence,
		Justification: c.Justification,
		Scores:        c.Scores,
		Flagged:       c.IsFlagged(),
	}
}

// FromRecord converts an evidence record.
func FromRecord(r *domain.EvidenceRecord) *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		ID:              r.ID,
		SourcePostID:    r.SourcePostID,
		Author:          r.Author,
		MediaReferences: r.MediaReferences,
		Classifier:      FromClassifier(r.Classifier),
		AnchoredHash:    r.AnchoredHash,
		LedgerReference: r.LedgerReference,
	}
	if r.HasContent {
		content := r.Content
		out.Content = &content
	}
	if !r.CreatedAt.IsZero() {
		out.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return out
}

// ToDomain converts the view back into an evidence record.
func (r *Record) ToDomain() (*domain.EvidenceRecord, error) {
	rec := &domain.EvidenceRecord{
		ID:              r.ID,
		SourcePostID:    r.SourcePostID,
		Author:          r.Author,
		MediaReferences: r.MediaReferences,
		AnchoredHash:    r.AnchoredHash,
		LedgerReference: r.LedgerReference,
	}
	if r.Content != nil {
		rec.Content, rec.HasContent = *r.Content, true
	}
	if r.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: created_at %q", domain.ErrInvalidInput, r.CreatedAt)
		}
		rec.CreatedAt = t.UTC()
	}
	if c := r.Classifier; c != nil {
		rec.Classifier = &domain.ClassifierResult{
			Category:      c.Category,
			Confidence:    c.Confidence,
			Justification: c.Justification,
			Scores:        c.Scores,
		}
	}
	return rec, nil
}

// FromInspection converts an inspection. explorerLink builds the explorer URL
// for a ledger reference and may be nil.
func FromInspection(in *domain.Inspection, explorerLink func(string) string) Inspection {
	out := Inspection{
		Input:  in.Input,
		Status: string(in.Status),
		Record: FromRecord(in.Record),
	}
	if v := in.Verification; v != nil {
		out.Verdict = v.Verdict.String()
		out.Authentic = v.Verdict.IsAuthentic()
		out.CalculatedHash = v.CalculatedHash
		out.AnchoredHash = v.AnchoredHash
		out.Reason = v.Reason
	}
	if l := in.Ledger; l != nil {
		out.Ledger = &Ledger{Status: string(l.Status), BlockNumber: l.BlockNumber, Detail: l.Detail}
	}
	if in.Record != nil && explorerLink != nil {
		out.ExplorerLink = explorerLink(in.Record.LedgerReference)
	}
	if in.Err != nil {
		out.Error = in.Err.Error()
	}
	return out
}

// FromCapture converts a capture.
func FromCapture(c *domain.Capture) Capture {
	return Capture{
		ID:            c.ID,
		PostID:        c.PostID,
		State:         string(c.State),
		Text:          c.Post.Text,
		Author:        c.Post.Author,
		ExtractedText: c.ExtractedText,
		Content:       c.Content,
		TextMismatch:  c.TextMismatch,
		Classifier:    FromClassifier(c.Classifier),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// FromPrepared converts prepared evidence.
func FromPrepared(p *driving.PreparedEvidence) Prepared {
	return Prepared{
		CaptureID: p.CaptureID,
		Hash:      p.Hash,
		Payload:   string(p.Payload),
		Record:    *FromRecord(&p.Record),
	}
}

// Resolution pairs an evidence ID with the ledger reference that anchors it.
type Resolution struct {
	ID              uint64 `json:"id"`
	LedgerReference string `json:"ledger_reference"`
}

// Resolve maps whichever identifier input holds to the other one.
func Resolve(ctx context.Context, lookup driving.LookupService, input string) (Resolution, error) {
	input = strings.TrimSpace(input)
	if domain.LooksLikeLedgerReference(input) {
		id, err := lookup.IDForReference(ctx, input)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{ID: id, LedgerReference: input}, nil
	}

	id, err := domain.ParseEvidenceID(input)
	if err != nil {
		return Resolution{}, err
	}
	ref, err := lookup.ReferenceForID(ctx, id)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{ID: id, LedgerReference: ref}, nil
}
