package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driven/evidenceapi"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

var (
	verifyJSON  bool
	verifyFiles []string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [id|0xref ...]",
	Short: "Verify evidence integrity",
	Long: `Look up evidence by numeric ID or 0x-prefixed ledger reference and verify
that its content still matches the anchored hash.

Exported records can be verified offline with --file.

Exit status is non-zero when any evidence is TAMPERED or could not be looked up.`,
	Example: `  chainforensix verify 12
  chainforensix verify 0x3f2a...c9 13 14
  chainforensix verify --file evidence-12.json`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "output results as JSON")
	verifyCmd.Flags().StringArrayVarP(&verifyFiles, "file", "f", nil, "verify an exported record file (repeatable)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}
	if len(args) == 0 && len(verifyFiles) == 0 {
		return errors.New("provide at least one evidence ID, ledger reference, or --file")
	}

	ctx := cmd.Context()
	var results []*domain.Inspection

	if len(args) > 0 {
		inspections, err := inspectionService.InspectMany(ctx, args)
		if err != nil {
			return fmt.Errorf("verify failed: %w", err)
		}
		results = append(results, inspections...)
	}

	for _, path := range verifyFiles {
		rec, err := readRecordFile(path)
		if err != nil {
			return err
		}
		insp, err := inspectionService.VerifyRecord(ctx, rec)
		if err != nil {
			return fmt.Errorf("verify %s: %w", path, err)
		}
		insp.Input = path
		results = append(results, insp)
	}

	return outputInspections(cmd, results, verifyJSON)
}

// readRecordFile reads an exported record.
func readRecordFile(path string) (*domain.EvidenceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := evidenceapi.ParseRecord(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rec, nil
}
