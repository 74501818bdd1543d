package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/evidenceapi"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/views"
	"github.com/custodia-labs/chainforensix-cli/internal/core/canonical"
)

var (
	evidenceJSON        bool
	evidenceResolveJSON bool
	evidenceOutput      string
	evidenceShowPayload bool
)

var evidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Look up and export evidence records",
}

var evidenceGetCmd = &cobra.Command{
	Use:   "get [id|0xref]",
	Short: "Show an evidence record without verifying it",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvidenceGet,
}

var evidenceExportCmd = &cobra.Command{
	Use:   "export [id|0xref]",
	Short: "Export an evidence record for offline verification or archiving",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvidenceExport,
}

var evidenceResolveCmd = &cobra.Command{
	Use:   "resolve [id|0xref]",
	Short: "Map an evidence ID to its ledger reference, or the reverse",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvidenceResolve,
}

var evidenceHashCmd = &cobra.Command{
	Use:   "hash [file]",
	Short: "Compute the canonical hash of an exported record",
	Long: `Compute the canonical SHA-256 of an exported record without comparing it
to the anchored hash. Use --payload to print the canonical bytes that are hashed.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvidenceHash,
}

func init() {
	evidenceGetCmd.Flags().BoolVar(&evidenceJSON, "json", false, "output the record as JSON")
	evidenceExportCmd.Flags().StringVarP(&evidenceOutput, "output", "o", "", "write to file instead of stdout")
	evidenceHashCmd.Flags().BoolVar(&evidenceShowPayload, "payload", false, "also print the canonical payload")
	evidenceCmd.AddCommand(evidenceGetCmd)
	evidenceResolveCmd.Flags().BoolVar(&evidenceResolveJSON, "json", false, "output as JSON")
	evidenceCmd.AddCommand(evidenceExportCmd)
	evidenceCmd.AddCommand(evidenceResolveCmd)
	evidenceCmd.AddCommand(evidenceHashCmd)
	rootCmd.AddCommand(evidenceCmd)
}

func runEvidenceGet(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	rec, err := lookupService.Resolve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if evidenceJSON {
		return writeJSON(cmd.OutOrStdout(), views.FromRecord(rec))
	}
	printRecord(cmd, rec)
	return nil
}

func runEvidenceResolve(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	res, err := views.Resolve(cmd.Context(), lookupService, args[0])
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}
	if evidenceResolveJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Evidence %d <-> %s\n", res.ID, res.LedgerReference)
	if link := explorerLink(res.LedgerReference); link != "" {
		cmd.Printf("Explorer: %s\n", link)
	}
	return nil
}

func runEvidenceExport(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	rec, err := lookupService.Resolve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	data, err := evidenceapi.MarshalRecord(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if evidenceOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(evidenceOutput, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", evidenceOutput, err)
	}
	cmd.Printf("Exported evidence %d to %s\n", rec.ID, evidenceOutput)
	return nil
}

func runEvidenceHash(cmd *cobra.Command, args []string) error {
	rec, err := readRecordFile(args[0])
	if err != nil {
		return err
	}
	payload, err := canonical.Payload(rec)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if evidenceShowPayload {
		fmt.Fprintln(out, string(payload))
	}
	fmt.Fprintln(out, canonical.Digest(payload))
	return nil
}
