package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chainforensix-cli/internal/core/canonical"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/services"
)

// fakePosts implements driven.PostSource.
type fakePosts struct {
	posts map[string]domain.Post
}

func (f *fakePosts) FetchPost(_ context.Context, postID string) (*domain.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type testEnv struct {
	store   *memory.EvidenceStore
	archive *memory.EvidenceStore
	config  *memory.ConfigStore
}

func ledgerRef(id uint64) string {
	return fmt.Sprintf("0x%064x", id)
}

// anchoredRecord builds a record whose anchored hash matches its content.
func anchoredRecord(t *testing.T, id uint64, content string) *domain.EvidenceRecord {
	t.Helper()
	rec := &domain.EvidenceRecord{
		ID:              id,
		SourcePostID:    fmt.Sprintf("post-%d", id),
		Content:         content,
		HasContent:      true,
		Author:          "alice",
		CreatedAt:       time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		MediaReferences: []string{},
		LedgerReference: ledgerRef(id),
	}
	hash, err := canonical.Hash(rec)
	require.NoError(t, err)
	rec.AnchoredHash = hash
	return rec
}

// setupTestServices wires real services over memory stores and restores
// the previous services when the test ends.
//
// The store holds evidence 1 (intact) and 2 (content edited after anchoring).
// Post "p-plain" has no embedded text; "p-image" needs visual confirmation.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:   memory.NewEvidenceStore(),
		archive: memory.NewEvidenceStore(),
		config:  memory.NewConfigStore(),
	}
	ctx := context.Background()
	require.NoError(t, env.store.Import(ctx, anchoredRecord(t, 1, "intact post")))
	tampered := anchoredRecord(t, 2, "original post")
	tampered.Content = "edited post"
	require.NoError(t, env.store.Import(ctx, tampered))

	posts := &fakePosts{posts: map[string]domain.Post{
		"p-plain": {ID: "p-plain", Text: "plain text", Author: "bob"},
		"p-image": {ID: "p-image", Text: "look at this", Author: "carol",
			RequiresConfirmation: true, VisualText: "SALE 50%"},
	}}

	verifier := services.NewVerifierService(nil)
	lookup := services.NewLookupService(env.store, nil, services.LookupOptions{MaxAttempts: 1})

	prev := Services{
		Verification: verificationService,
		Lookup:       lookupService,
		Inspection:   inspectionService,
		Capture:      captureService,
		Archive:      archiveService,
		Settings:     settingsService,
		Metrics:      metricsHandler,
	}
	SetServices(&Services{
		Verification: verifier,
		Lookup:       lookup,
		Inspection:   services.NewInspectionService(lookup, verifier, nil),
		Capture:      services.NewCaptureService(posts, nil, memory.NewCaptureStore()),
		Archive:      services.NewArchiveService(env.archive),
		Settings:     services.NewSettingsService(env.config),
	})
	t.Cleanup(func() { SetServices(&prev) })
	return env
}

// executeCommand runs the root command with fresh flag values.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default so values do not leak
// between test runs of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

