package views

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
)

func sampleRecord() *domain.EvidenceRecord {
	return &domain.EvidenceRecord{
		ID:              7,
		SourcePostID:    "1789",
		Content:         "Post A",
		HasContent:      true,
		Author:          "alice",
		CreatedAt:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		MediaReferences: []string{"m1"},
		Classifier:      &domain.ClassifierResult{Category: "Defamatory", Confidence: 0.8},
		AnchoredHash:    strings.Repeat("a", 64),
		LedgerReference: "0x" + strings.Repeat("b", 64),
	}
}

func TestRecord_ToDomainInvertsFromRecord(t *testing.T) {
	rec := sampleRecord()

	back, err := FromRecord(rec).ToDomain()

	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestRecord_MissingContentStaysMissing(t *testing.T) {
	view := FromRecord(&domain.EvidenceRecord{SourcePostID: "1"})
	assert.Nil(t, view.Content)

	back, err := view.ToDomain()
	require.NoError(t, err)
	assert.False(t, back.HasContent)
}

func TestRecord_ToDomainRejectsBadTime(t *testing.T) {
	_, err := (&Record{CreatedAt: "yesterday"}).ToDomain()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFromClassifier_Flagged(t *testing.T) {
	assert.Nil(t, FromClassifier(nil))
	assert.True(t, FromClassifier(&domain.ClassifierResult{Category: "Hate Speech"}).Flagged)
	assert.False(t, FromClassifier(&domain.ClassifierResult{Category: "Safe"}).Flagged)
}

func TestFromInspection_Verified(t *testing.T) {
	rec := sampleRecord()
	in := &domain.Inspection{
		Input:  "7",
		Status: domain.StatusVerified,
		Record: rec,
		Verification: &domain.Verification{
			Verdict:        domain.VerdictVerified,
			CalculatedHash: rec.AnchoredHash,
			AnchoredHash:   rec.AnchoredHash,
			Reason:         domain.ReasonHashesMatch,
		},
		Ledger: &domain.LedgerCheck{Status: domain.LedgerConfirmed, BlockNumber: 9},
	}

	out := FromInspection(in, func(ref string) string { return "https://explorer/tx/" + ref })

	assert.Equal(t, "verified", out.Status)
	assert.Equal(t, "verified", out.Verdict)
	assert.True(t, out.Authentic)
	assert.Equal(t, "confirmed", out.Ledger.Status)
	assert.Equal(t, uint64(9), out.Ledger.BlockNumber)
	assert.Equal(t, "https://explorer/tx/"+rec.LedgerReference, out.ExplorerLink)
	assert.Empty(t, out.Error)
}

func TestFromInspection_LookupFailure(t *testing.T) {
	in := &domain.Inspection{Input: "9", Status: domain.StatusNotFound, Err: errors.New("evidence 9: not found")}

	out := FromInspection(in, nil)

	assert.Equal(t, "not_found", out.Status)
	assert.Empty(t, out.Verdict)
	assert.False(t, out.Authentic)
	assert.Nil(t, out.Record)
	assert.Equal(t, "evidence 9: not found", out.Error)
}

func TestFromCapture(t *testing.T) {
	c := domain.NewCapture("c1", "p1", "", time.Now())
	c.Post = domain.Post{ID: "p1", Text: "hello", Author: "bob"}
	c.ExtractedText = "ocr"
	c.State = domain.CaptureAwaitingConfirmation

	out := FromCapture(c)

	assert.Equal(t, "c1", out.ID)
	assert.Equal(t, "awaiting_confirmation", out.State)
	assert.Equal(t, "hello", out.Text)
	assert.Equal(t, "ocr", out.ExtractedText)
}

func TestFromPrepared(t *testing.T) {
	p := &driving.PreparedEvidence{CaptureID: "c1", Record: *sampleRecord(), Payload: []byte(`{"a":1}`), Hash: "h"}

	out := FromPrepared(p)

	assert.Equal(t, "c1", out.CaptureID)
	assert.Equal(t, `{"a":1}`, out.Payload)
	assert.Equal(t, "1789", out.Record.SourcePostID)
}

// refLookup resolves between a fixed set of IDs and references.
type refLookup struct {
	refs map[uint64]string
}

func (l *refLookup) ResolveByID(context.Context, uint64) (*domain.EvidenceRecord, error) {
	return nil, domain.ErrNotImplemented
}

func (l *refLookup) ResolveByLedgerReference(context.Context, string) (*domain.EvidenceRecord, error) {
	return nil, domain.ErrNotImplemented
}

func (l *refLookup) Resolve(context.Context, string) (*domain.EvidenceRecord, error) {
	return nil, domain.ErrNotImplemented
}

func (l *refLookup) IDForReference(_ context.Context, ref string) (uint64, error) {
	if _, err := domain.ParseLedgerReference(ref); err != nil {
		return 0, err
	}
	for id, r := range l.refs {
		if strings.EqualFold(r, ref) {
			return id, nil
		}
	}
	return 0, domain.ErrNotFound
}

func (l *refLookup) ReferenceForID(_ context.Context, id uint64) (string, error) {
	ref, ok := l.refs[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	if ref == "" {
		return "", domain.ErrNotAnchored
	}
	return ref, nil
}

func TestResolve(t *testing.T) {
	ref := "0x" + strings.Repeat("b", 64)
	lookup := &refLookup{refs: map[uint64]string{7: ref, 8: ""}}
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		want    Resolution
		wantErr error
	}{
		{"id to reference", "7", Resolution{ID: 7, LedgerReference: ref}, nil},
		{"reference to id", " " + ref + " ", Resolution{ID: 7, LedgerReference: ref}, nil},
		{"unanchored", "8", Resolution{}, domain.ErrNotAnchored},
		{"unknown id", "9", Resolution{}, domain.ErrNotFound},
		{"bad id", "seven", Resolution{}, domain.ErrInvalidEvidenceID},
		{"bad reference", "0x12", Resolution{}, domain.ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(ctx, lookup, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

var _ driving.LookupService = (*refLookup)(nil)
