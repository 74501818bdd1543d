package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func testRecord(id uint64, ref string) *domain.EvidenceRecord {
	return &domain.EvidenceRecord{
		ID:              id,
		SourcePostID:    "1789",
		Content:         "Post A",
		HasContent:      true,
		MediaReferences: []string{"https://x.example/1.jpg"},
		Classifier:      &domain.ClassifierResult{Category: "Safe", Scores: map[string]float64{"safe": 1}},
		LedgerReference: ref,
	}
}

func TestEvidenceStore_ImportAndGet(t *testing.T) {
	store := NewEvidenceStore()
	ctx := context.Background()
	ref := "0x" + strings.Repeat("ab", 32)

	require.NoError(t, store.Import(ctx, testRecord(7, ref)))

	byID, err := store.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Post A", byID.Content)

	byRef, err := store.GetByLedgerReference(ctx, strings.ToUpper(ref[2:]))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, byRef)

	byRef, err = store.GetByLedgerReference(ctx, "0x"+strings.ToUpper(ref[2:]))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), byRef.ID)
}

func TestEvidenceStore_ImportIsCreateOnly(t *testing.T) {
	store := NewEvidenceStore()
	ctx := context.Background()
	ref := "0x" + strings.Repeat("cd", 32)

	require.NoError(t, store.Import(ctx, testRecord(1, ref)))
	assert.ErrorIs(t, store.Import(ctx, testRecord(1, "")), domain.ErrAlreadyExists)
	assert.ErrorIs(t, store.Import(ctx, testRecord(2, ref)), domain.ErrAlreadyExists)

	_, err := store.GetByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvidenceStore_ImportRejectsBadInput(t *testing.T) {
	store := NewEvidenceStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Import(ctx, nil), domain.ErrNilRecord)
	assert.ErrorIs(t, store.Import(ctx, testRecord(0, "")), domain.ErrInvalidEvidenceID)
}

func TestEvidenceStore_ReturnsCopies(t *testing.T) {
	store := NewEvidenceStore()
	ctx := context.Background()
	require.NoError(t, store.Import(ctx, testRecord(1, "")))

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	got.MediaReferences[0] = "changed"
	got.Classifier.Scores["safe"] = 0

	again, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://x.example/1.jpg", again.MediaReferences[0])
	assert.InDelta(t, 1.0, again.Classifier.Scores["safe"], 0)
}

func TestEvidenceStore_List(t *testing.T) {
	store := NewEvidenceStore()
	ctx := context.Background()
	for _, id := range []uint64{3, 1, 2} {
		require.NoError(t, store.Import(ctx, testRecord(id, "")))
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, uint64(1), all[0].ID)
	assert.Equal(t, uint64(3), all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
