package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/views"
)

var (
	archiveLimit int
	archiveJSON  bool
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local evidence archive",
	Long: `The local archive keeps exported evidence records in SQLite so they can be
verified without the backend (settings backend archive). Archived records are
immutable: importing an existing ID or ledger reference fails.`,
}

var archiveImportCmd = &cobra.Command{
	Use:   "import [file ...]",
	Short: "Import exported evidence records",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchiveImport,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived records",
	RunE:  runArchiveList,
}

func init() {
	archiveListCmd.Flags().IntVarP(&archiveLimit, "limit", "n", 50, "maximum number of records")
	archiveListCmd.Flags().BoolVar(&archiveJSON, "json", false, "output as JSON")
	archiveCmd.AddCommand(archiveImportCmd)
	archiveCmd.AddCommand(archiveListCmd)
	rootCmd.AddCommand(archiveCmd)
}

func runArchiveImport(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	failed := 0
	for _, path := range args {
		rec, err := readRecordFile(path)
		if err == nil {
			err = archiveService.Import(cmd.Context(), rec)
		}
		if err != nil {
			failed++
			cmd.PrintErrf("%s: %v\n", path, err)
			continue
		}
		cmd.Printf("Imported evidence %d from %s\n", rec.ID, path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(args))
	}
	return nil
}

func runArchiveList(cmd *cobra.Command, _ []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}
	records, err := archiveService.List(cmd.Context(), archiveLimit)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	if archiveJSON {
		out := make([]*views.Record, len(records))
		for i := range records {
			out[i] = views.FromRecord(&records[i])
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}
	if len(records) == 0 {
		cmd.Println("Archive is empty.")
		return nil
	}
	for i := range records {
		r := &records[i]
		ref := r.LedgerReference
		if ref == "" {
			ref = "(no ledger reference)"
		}
		cmd.Printf("%6d  post %-20s  %s\n", r.ID, r.SourcePostID, ref)
	}
	return nil
}
