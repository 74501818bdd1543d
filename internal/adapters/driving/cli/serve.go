package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

var (
	serveAddr  string
	serveRate  float64
	serveBurst int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API",
	Long: `Serve evidence verification over HTTP.

Routes:
  GET  /healthz
  GET  /metrics
  GET  /v1/evidence/{id|0xref}
  POST /v1/verify          {"inputs": [...]}
  POST /v1/verify/record   exported record body
  GET  /v1/records/{id|0xref}
  GET  /v1/resolve/{id|0xref}
  /v1/captures             capture workflow
  /v1/archive              local archive

Tampered evidence is answered with 409 Conflict.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 0, "max requests per second (0 = unlimited)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", 10, "rate limiter burst")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}

	addr := serveAddr
	if addr == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			addr = settings.Server.Addr
		}
	}
	if addr == "" {
		addr = domain.DefaultAppSettings().Server.Addr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Inspection:   inspectionService,
		Lookup:       lookupService,
		Capture:      captureService,
		Archive:      archiveService,
		Metrics:      metricsHandler,
		ExplorerLink: explorerLink,
	}, httpapi.Options{RatePerSecond: serveRate, Burst: serveBurst})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "REST API listening on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}
