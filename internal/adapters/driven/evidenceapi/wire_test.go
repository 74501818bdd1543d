package evidenceapi

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func TestParseRecord_ContentPreferredOverText(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"id":"3","data":{"id":1,"content":"from content","text":"from text"}}`))

	require.NoError(t, err)
	assert.Equal(t, uint64(3), rec.ID)
	assert.Equal(t, "1", rec.SourcePostID)
	assert.Equal(t, "from content", rec.Content)
}

func TestParseRecord_MissingContent(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"id":3,"data":{"id":"1"},"hash":"abc"}`))

	require.NoError(t, err)
	assert.False(t, rec.HasContent)
	assert.Equal(t, "abc", rec.AnchoredHash)
}

func TestParseRecord_EmptyContentIsPresent(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"id":3,"data":{"id":"1","text":""}}`))

	require.NoError(t, err)
	assert.True(t, rec.HasContent)
	assert.Empty(t, rec.Content)
}

func TestParseRecord_ContractTuple(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"id":4,"data":["1789","Post A","alice",1704164645]}`))

	require.NoError(t, err)
	assert.Equal(t, "1789", rec.SourcePostID)
	assert.Equal(t, "Post A", rec.Content)
	assert.Equal(t, "alice", rec.Author)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), rec.CreatedAt)
}

func TestParseRecord_ShortTuple(t *testing.T) {
	_, err := ParseRecord([]byte(`{"id":4,"data":["1789"]}`))

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseRecord_NotFoundShapes(t *testing.T) {
	for _, body := range []string{`{"id":1}`, `{"id":1,"data":null}`, `{"error":"Evidence not found"}`} {
		_, err := ParseRecord([]byte(body))
		assert.ErrorIs(t, err, domain.ErrNotFound, body)
	}
}

func TestParseRecord_Malformed(t *testing.T) {
	for _, body := range []string{`not json`, `{"id":"x","data":{}}`, `{"id":1,"data":{"created_at":"yesterday"}}`} {
		_, err := ParseRecord([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
	}
}

func TestParseRecord_LedgerReferencePreference(t *testing.T) {
	bare := strings.Repeat("cd", 32)
	rec, err := ParseRecord([]byte(`{"id":1,"data":{"id":"1"},"tx_hash":"` + bare + `","eth_tx_hash":"0x` + strings.Repeat("ef", 32) + `"}`))
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("ef", 32), rec.LedgerReference)

	rec, err = ParseRecord([]byte(`{"id":1,"data":{"id":"1"},"tx_hash":"` + bare + `"}`))
	require.NoError(t, err)
	assert.Equal(t, "0x"+bare, rec.LedgerReference)
}

func TestMarshalRecord_ReadBackByParseRecord(t *testing.T) {
	rec := &domain.EvidenceRecord{
		ID:              12,
		SourcePostID:    "1789",
		Content:         "Post A",
		HasContent:      true,
		Author:          "alice",
		CreatedAt:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		MediaReferences: []string{"m2", "m1"},
		Classifier:      &domain.ClassifierResult{Category: "Safe", Confidence: 0.9, Scores: map[string]float64{"Safe": 0.9}},
		AnchoredHash:    strings.Repeat("a", 64),
		LedgerReference: "0x" + strings.Repeat("b", 64),
	}

	body, err := MarshalRecord(rec)
	require.NoError(t, err)
	back, err := ParseRecord(body)

	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestMarshalRecord_OmitsMissingContent(t *testing.T) {
	body, err := MarshalRecord(&domain.EvidenceRecord{ID: 1, SourcePostID: "p"})
	require.NoError(t, err)

	assert.NotContains(t, string(body), `"content"`)
	back, err := ParseRecord(body)
	require.NoError(t, err)
	assert.False(t, back.HasContent)
}

func TestMarshalRecord_Nil(t *testing.T) {
	_, err := MarshalRecord(nil)

	assert.ErrorIs(t, err, domain.ErrNilRecord)
}
