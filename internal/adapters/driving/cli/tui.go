package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Type an evidence ID or ledger reference and the verdict appears once typing
pauses. The archive view lists locally archived evidence.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Verify now / Select
  n        - New lookup
  r        - Recheck / Reload
  Esc      - Back
  q        - Quit (menu)`,
	RunE: runTUI,
}

var tuiDebounce time.Duration

func init() {
	tuiCmd.Flags().DurationVar(&tuiDebounce, "debounce", 0, "quiet period before a live lookup (default from settings)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}

	app, err := tui.NewApp(&tui.Ports{
		Inspection: inspectionService,
		Archive:    archiveService,
		Settings:   settingsService,
		Debounce:   tuiDebounce,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
