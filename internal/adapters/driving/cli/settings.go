package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the evidence store, backend API, and ledger checks.

Settings live in ~/.chainforensix/config.toml. Any key can be overridden for a
single run with an environment variable, e.g. CHAINFORENSIX_API_TOKEN.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend [api|archive]",
	Short: "Select the evidence store",
	Long: `Select where evidence is looked up.

Available backends:
  api     - Backend API (remote)
  archive - Local archive (SQLite)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsBackend,
}

var settingsAPICmd = &cobra.Command{
	Use:   "api",
	Short: "Configure the backend API",
	RunE:  runSettingsAPI,
}

var settingsLedgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Configure independent ledger checks",
	Long: `Configure an Ethereum JSON-RPC endpoint. When set, every verification also
checks that the anchoring transaction is mined and carries the anchored hash.
Pass --rpc "" to disable.`,
	RunE: runSettingsLedger,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that current settings are usable",
	RunE:  runSettingsValidate,
}

var (
	settingsAPIURL      string
	settingsAPIToken    string
	settingsLedgerRPC   string
	settingsLedgerExplr string
)

func init() {
	settingsAPICmd.Flags().StringVar(&settingsAPIURL, "url", "", "backend base URL")
	settingsAPICmd.Flags().StringVar(&settingsAPIToken, "token", "", "bearer token")
	settingsLedgerCmd.Flags().StringVar(&settingsLedgerRPC, "rpc", "", "Ethereum JSON-RPC URL")
	settingsLedgerCmd.Flags().StringVar(&settingsLedgerExplr, "explorer", "", "block explorer transaction URL prefix")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsAPICmd)
	settingsCmd.AddCommand(settingsLedgerCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Description())
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", valueOrUnset(settings.API.BaseURL))
	if settings.API.Token != "" {
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.API.Token))
	} else {
		cmd.Printf("  Token: (not set)\n")
	}
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Printf("  Rate: %.1f req/s\n", settings.API.RatePerSecond)
	cmd.Println()

	cmd.Println("[Lookup]")
	cmd.Printf("  Max attempts: %d\n", settings.Lookup.MaxAttempts)
	cmd.Printf("  Backoff: %s\n", settings.Lookup.Backoff)
	cmd.Printf("  Debounce: %s\n", settings.Lookup.Debounce)
	cmd.Println()

	cmd.Println("[Ledger]")
	cmd.Printf("  RPC URL: %s\n", valueOrUnset(settings.Ledger.RPCURL))
	cmd.Printf("  Explorer: %s\n", valueOrUnset(settings.Ledger.ExplorerURL))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

//nolint:errcheck // CLI interactive flow
func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	cmd.Println("chainforensix Setup Wizard")
	cmd.Println("==========================")
	cmd.Println()

	backends := domain.AllStoreBackends()
	current := 1
	cmd.Println("Evidence store:")
	for i, b := range backends {
		if b == settings.Store {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Printf("Select [%d]: ", current)
	settings.Store = backends[parseChoice(readLine(reader), len(backends), current)-1]
	cmd.Println()

	cmd.Printf("Backend base URL [%s]: ", settings.API.BaseURL)
	if v := readLine(reader); v != "" {
		settings.API.BaseURL = strings.TrimRight(v, "/")
	}

	cmd.Print("Bearer token (leave empty to keep): ")
	settings.API.Token = readPassword(in, reader)
	cmd.Println()

	cmd.Printf("Ethereum RPC URL for ledger checks [%s]: ", settings.Ledger.RPCURL)
	if v := readLine(reader); v != "" {
		settings.Ledger.RPCURL = v
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

//nolint:errcheck // CLI interactive flow
func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var backend domain.StoreBackend
	if len(args) == 1 {
		backend = domain.StoreBackend(args[0])
	} else {
		backends := domain.AllStoreBackends()
		cmd.Println("Evidence store:")
		for i, b := range backends {
			cmd.Printf("  %d. %s\n", i+1, b.Description())
		}
		cmd.Print("Select [1]: ")
		backend = backends[parseChoice(readLine(bufio.NewReader(cmd.InOrStdin())), len(backends), 1)-1]
	}

	if err := settingsService.SetStoreBackend(backend); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}
	cmd.Printf("Evidence store set to: %s\n", backend.Description())
	return nil
}

func runSettingsAPI(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if settingsAPIURL == "" && settingsAPIToken == "" {
		return errors.New("provide --url and/or --token")
	}
	if err := settingsService.SetAPI(settingsAPIURL, settingsAPIToken); err != nil {
		return fmt.Errorf("failed to configure API: %w", err)
	}
	cmd.Println("Backend API configured.")
	return nil
}

func runSettingsLedger(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if !cmd.Flags().Changed("rpc") && !cmd.Flags().Changed("explorer") {
		return errors.New("provide --rpc and/or --explorer")
	}

	rpc := settingsLedgerRPC
	if !cmd.Flags().Changed("rpc") {
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		rpc = settings.Ledger.RPCURL
	}
	if err := settingsService.SetLedger(rpc, settingsLedgerExplr); err != nil {
		return fmt.Errorf("failed to configure ledger: %w", err)
	}
	if rpc == "" {
		cmd.Println("Ledger checks disabled.")
	} else {
		cmd.Printf("Ledger checks use %s\n", rpc)
	}
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Validate(); err != nil {
		return err
	}
	cmd.Println("Settings are valid.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
