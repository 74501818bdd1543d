package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/evidenceapi"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/views"
	"github.com/custodia-labs/chainforensix-cli/internal/core/canonical"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func TestEvidenceGet(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "evidence", "get", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Evidence 1")
	assert.Contains(t, out, "intact post")
	assert.Contains(t, out, ledgerRef(1))
}

func TestEvidenceGet_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "evidence", "get", "--json", ledgerRef(1))
	require.NoError(t, err)

	var rec views.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, uint64(1), rec.ID)
	require.NotNil(t, rec.Content)
	assert.Equal(t, "intact post", *rec.Content)
}

func TestEvidenceGet_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "evidence", "get", "404")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup failed")
}

func TestEvidenceResolve(t *testing.T) {
	env := setupTestServices(t)
	unanchored := anchoredRecord(t, 3, "draft")
	unanchored.LedgerReference = ""
	require.NoError(t, env.store.Import(context.Background(), unanchored))

	out, err := executeCommand(t, "evidence", "resolve", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Evidence 1 <-> "+ledgerRef(1))
	assert.Contains(t, out, "Explorer: ")

	out, err = executeCommand(t, "evidence", "resolve", "--json", ledgerRef(2))
	require.NoError(t, err)
	var res views.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, views.Resolution{ID: 2, LedgerReference: ledgerRef(2)}, res)

	_, err = executeCommand(t, "evidence", "resolve", "3")
	assert.ErrorIs(t, err, domain.ErrNotAnchored)

	_, err = executeCommand(t, "evidence", "resolve", "0xabc")
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestEvidenceExport_RoundTrip(t *testing.T) {
	setupTestServices(t)
	path := filepath.Join(t.TempDir(), "e1.json")

	out, err := executeCommand(t, "evidence", "export", "1", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported evidence 1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rec, err := evidenceapi.ParseRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "intact post", rec.Content)

	// The exported file verifies offline.
	out, err = executeCommand(t, "verify", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "VERIFIED")
}

func TestEvidenceExport_Stdout(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "evidence", "export", "1")

	require.NoError(t, err)
	rec, err := evidenceapi.ParseRecord([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.ID)
}

func TestEvidenceHash(t *testing.T) {
	setupTestServices(t)
	rec := anchoredRecord(t, 20, "hash me")
	path := writeRecordFile(t, t.TempDir(), "r.json", rec)

	out, err := executeCommand(t, "evidence", "hash", path)

	require.NoError(t, err)
	assert.Equal(t, rec.AnchoredHash, strings.TrimSpace(out))
}

func TestEvidenceHash_Payload(t *testing.T) {
	setupTestServices(t)
	rec := anchoredRecord(t, 21, "hash me")
	path := writeRecordFile(t, t.TempDir(), "r.json", rec)
	payload, err := canonical.Payload(rec)
	require.NoError(t, err)

	out, err := executeCommand(t, "evidence", "hash", "--payload", path)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, string(payload), lines[0])
	assert.Equal(t, rec.AnchoredHash, lines[1])
}
