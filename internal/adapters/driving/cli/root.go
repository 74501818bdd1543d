// Package cli provides the chainforensix command-line interface.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// ErrTampered is returned when at least one verdict is tampered,
// so the process exits non-zero.
var ErrTampered = errors.New("tampered evidence detected")

// Services holds the driving ports used by commands.
type Services struct {
	Verification driving.VerificationService
	Lookup       driving.LookupService
	Inspection   driving.InspectionService
	Capture      driving.CaptureService
	Archive      driving.ArchiveService
	Settings     driving.SettingsService

	// Metrics serves the Prometheus registry on the REST server.
	Metrics http.Handler
}

var (
	verificationService driving.VerificationService
	lookupService       driving.LookupService
	inspectionService   driving.InspectionService
	captureService      driving.CaptureService
	archiveService      driving.ArchiveService
	settingsService     driving.SettingsService
	metricsHandler      http.Handler
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "chainforensix",
	Short: "Verify the integrity of anchored social-media evidence",
	Long: `chainforensix checks that archived social-media evidence is unchanged since
it was anchored on a public ledger.

Evidence is looked up by numeric ID or by 0x-prefixed ledger transaction
reference, re-encoded canonically, hashed with SHA-256, and compared with the
anchored hash. The verdict is VERIFIED, TAMPERED or UNKNOWN.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// SetServices injects the services used by commands.
func SetServices(s *Services) {
	verificationService = s.Verification
	lookupService = s.Lookup
	inspectionService = s.Inspection
	captureService = s.Capture
	archiveService = s.Archive
	settingsService = s.Settings
	metricsHandler = s.Metrics
}

// SetVersion sets the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Cancelling ctx stops long-running commands.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// explorerLink builds a block explorer URL from current settings.
func explorerLink(ref string) string {
	if settingsService == nil {
		return domain.DefaultAppSettings().Ledger.ExplorerLink(ref)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return ""
	}
	return settings.Ledger.ExplorerLink(ref)
}
