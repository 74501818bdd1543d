package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/views"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func statusLabel(s domain.InspectionStatus) string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}

// printInspection renders one inspection for humans.
func printInspection(cmd *cobra.Command, in *domain.Inspection) {
	out := cmd.OutOrStdout()
	title := in.Input
	if title == "" {
		title = "(inline record)"
	}
	fmt.Fprintf(out, "Evidence %s: %s\n", title, statusLabel(in.Status))

	if in.Err != nil {
		fmt.Fprintf(out, "  Error:      %v\n", in.Err)
		return
	}
	if v := in.Verification; v != nil {
		fmt.Fprintf(out, "  Verdict:    %s\n", v.Verdict.Label())
		if v.CalculatedHash != "" {
			fmt.Fprintf(out, "  Calculated: %s\n", v.CalculatedHash)
		}
		if v.AnchoredHash != "" {
			fmt.Fprintf(out, "  Anchored:   %s\n", v.AnchoredHash)
		}
		fmt.Fprintf(out, "  Reason:     %s\n", v.Reason)
	}
	if r := in.Record; r != nil {
		if r.Author != "" {
			fmt.Fprintf(out, "  Author:     @%s\n", r.Author)
		}
		if c := r.Classifier; c != nil {
			fmt.Fprintf(out, "  Classifier: %s (%.0f%%)\n", c.Category, c.Confidence*100)
		}
		if r.LedgerReference != "" {
			fmt.Fprintf(out, "  Ledger ref: %s\n", r.LedgerReference)
			if link := explorerLink(r.LedgerReference); link != "" {
				fmt.Fprintf(out, "  Explorer:   %s\n", link)
			}
		}
	}
	if l := in.Ledger; l != nil {
		line := string(l.Status)
		if l.BlockNumber > 0 {
			line += fmt.Sprintf(" (block %d)", l.BlockNumber)
		}
		if l.Detail != "" {
			line += ": " + l.Detail
		}
		fmt.Fprintf(out, "  On-chain:   %s\n", line)
	}
}

// printRecord renders an evidence record for humans.
func printRecord(cmd *cobra.Command, r *domain.EvidenceRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Evidence %d\n", r.ID)
	fmt.Fprintf(out, "  Post:       %s\n", r.SourcePostID)
	if r.Author != "" {
		fmt.Fprintf(out, "  Author:     @%s\n", r.Author)
	}
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(out, "  Created:    %s\n", r.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	if r.HasContent {
		fmt.Fprintf(out, "  Content:    %s\n", indentContinuation(r.Content, "              "))
	} else {
		fmt.Fprintln(out, "  Content:    (missing)")
	}
	for i, m := range r.MediaReferences {
		fmt.Fprintf(out, "  Media %d:    %s\n", i+1, m)
	}
	if c := r.Classifier; c != nil {
		fmt.Fprintf(out, "  Classifier: %s (%.0f%%)\n", c.Category, c.Confidence*100)
		if c.Justification != "" {
			fmt.Fprintf(out, "              %s\n", c.Justification)
		}
	}
	if r.AnchoredHash != "" {
		fmt.Fprintf(out, "  Anchored:   %s\n", r.AnchoredHash)
	}
	if r.LedgerReference != "" {
		fmt.Fprintf(out, "  Ledger ref: %s\n", r.LedgerReference)
	}
}

func indentContinuation(s, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

// outputInspections writes inspections and derives the command error:
// ErrTampered wins over lookup failures.
func outputInspections(cmd *cobra.Command, results []*domain.Inspection, asJSON bool) error {
	if asJSON {
		out := make([]views.Inspection, len(results))
		for i, r := range results {
			out[i] = views.FromInspection(r, explorerLink)
		}
		if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	} else {
		for i, r := range results {
			if i > 0 {
				cmd.Println()
			}
			printInspection(cmd, r)
		}
	}
	return inspectionsError(results)
}

func inspectionsError(results []*domain.Inspection) error {
	failed := 0
	for _, r := range results {
		if r.Status == domain.StatusTampered {
			return ErrTampered
		}
		if r.Status.IsLookupFailure() || r.Status == domain.StatusInvalidInput {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be verified", failed, len(results))
	}
	return nil
}
