// Command chainforensix verifies the integrity of anchored social-media evidence.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/evidenceapi"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/ledger/ethereum"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chainforensix-cli/internal/core/services"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return 1
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening archive: %v\n", err)
		return 1
	}
	defer store.Close()
	archive := store.EvidenceArchive()

	metrics := prometheus.New()

	var (
		evidence   driven.EvidenceStore = archive
		posts      driven.PostSource
		classifier driven.Classifier
	)
	if settings.API.IsConfigured() {
		client, err := evidenceapi.NewClient(settings.API)
		if err != nil {
			logger.Warn("Backend API disabled: %v", err)
		} else {
			posts = client
			classifier = client
			if settings.Store == domain.StoreBackendAPI {
				evidence = client
			}
		}
	}
	if settings.Store == domain.StoreBackendAPI && posts == nil {
		logger.Warn("Backend API not configured; looking up evidence in the local archive")
	}

	var ledger driven.LedgerClient
	if settings.Ledger.IsConfigured() {
		client, err := ethereum.Dial(ctx, settings.Ledger.RPCURL)
		if err != nil {
			logger.Warn("Ledger checks disabled: %v", err)
		} else {
			defer client.Close()
			ledger = client
		}
	}

	verifier := services.NewVerifierService(metrics)
	lookup := services.NewLookupService(evidence, metrics, services.LookupOptionsFromSettings(settings))

	cli.SetServices(&cli.Services{
		Verification: verifier,
		Lookup:       lookup,
		Inspection:   services.NewInspectionService(lookup, verifier, ledger),
		Capture:      services.NewCaptureService(posts, classifier, store.CaptureStore()),
		Archive:      services.NewArchiveService(archive),
		Settings:     settingsService,
		Metrics:      metrics.Handler(),
	})
	cli.SetVersion(version)

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
