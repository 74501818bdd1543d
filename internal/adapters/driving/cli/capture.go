package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/views"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

var (
	captureExpect  string
	captureVisual  string
	captureAccept  bool
	captureJSON    bool
	capturePayload bool
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture posts for anchoring",
	Long: `Fetch a post and freeze its content for anchoring.

When a post carries images with embedded text, the extracted text must be
reviewed before the content is frozen. The reviewed text is appended to the
post as a visual-content segment and becomes part of the hashed evidence.`,
}

var captureStartCmd = &cobra.Command{
	Use:   "start [post-id]",
	Short: "Fetch a post and open a capture",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaptureStart,
}

var captureConfirmCmd = &cobra.Command{
	Use:   "confirm [capture-id]",
	Short: "Review extracted text and freeze the capture",
	Long: `Review the text extracted from attached media. Without --text or --accept
the extracted text is shown and a replacement is read from stdin; an empty
line keeps it.`,
	Args: cobra.ExactArgs(1),
	RunE: runCaptureConfirm,
}

var capturePrepareCmd = &cobra.Command{
	Use:   "prepare [capture-id]",
	Short: "Show the canonical payload and hash of a confirmed capture",
	Args:  cobra.ExactArgs(1),
	RunE:  runCapturePrepare,
}

var captureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captures",
	RunE:  runCaptureList,
}

var captureShowCmd = &cobra.Command{
	Use:   "show [capture-id]",
	Short: "Show a capture",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaptureShow,
}

var captureDiscardCmd = &cobra.Command{
	Use:   "discard [capture-id]",
	Short: "Delete a capture",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaptureDiscard,
}

func init() {
	captureStartCmd.Flags().StringVar(&captureExpect, "expect", "", "text the post is expected to contain")
	captureConfirmCmd.Flags().StringVar(&captureVisual, "text", "", "reviewed visual text")
	captureConfirmCmd.Flags().BoolVar(&captureAccept, "accept", false, "accept the extracted text unchanged")
	capturePrepareCmd.Flags().BoolVar(&captureJSON, "json", false, "output as JSON")
	capturePrepareCmd.Flags().BoolVar(&capturePayload, "payload", false, "print the canonical payload")
	captureListCmd.Flags().BoolVar(&captureJSON, "json", false, "output as JSON")
	captureShowCmd.Flags().BoolVar(&captureJSON, "json", false, "output as JSON")

	captureCmd.AddCommand(captureStartCmd)
	captureCmd.AddCommand(captureConfirmCmd)
	captureCmd.AddCommand(capturePrepareCmd)
	captureCmd.AddCommand(captureListCmd)
	captureCmd.AddCommand(captureShowCmd)
	captureCmd.AddCommand(captureDiscardCmd)
	rootCmd.AddCommand(captureCmd)
}

func runCaptureStart(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}
	c, err := captureService.Start(cmd.Context(), args[0], captureExpect)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}
	printCapture(cmd, c)

	if c.State == domain.CaptureAwaitingConfirmation {
		cmd.Println()
		cmd.Printf("Review the extracted text, then run: chainforensix capture confirm %s\n", c.ID)
	}
	return nil
}

func runCaptureConfirm(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}
	ctx := cmd.Context()

	visual := captureVisual
	if !cmd.Flags().Changed("text") {
		c, err := captureService.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if c.State != domain.CaptureAwaitingConfirmation {
			return fmt.Errorf("%w: capture %s is %s", domain.ErrInvalidTransition, c.ID, c.State)
		}
		visual = c.ExtractedText
		if !captureAccept {
			visual = reviewVisualText(cmd, cmd.InOrStdin(), c.ExtractedText)
		}
	}

	c, err := captureService.Confirm(ctx, args[0], visual)
	if err != nil {
		return fmt.Errorf("confirm failed: %w", err)
	}
	printCapture(cmd, c)
	return nil
}

// reviewVisualText shows extracted text and reads a replacement line.
func reviewVisualText(cmd *cobra.Command, in io.Reader, extracted string) string {
	cmd.Println("Extracted text:")
	cmd.Printf("  %s\n", indentContinuation(extracted, "  "))
	cmd.Print("Replacement (Enter to keep): ")

	line, _ := bufio.NewReader(in).ReadString('\n')
	if line = strings.TrimSpace(line); line == "" {
		return extracted
	}
	return line
}

func runCapturePrepare(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}
	p, err := captureService.Prepare(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}
	if captureJSON {
		return writeJSON(cmd.OutOrStdout(), views.FromPrepared(p))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Capture %s\n", p.CaptureID)
	fmt.Fprintf(out, "  Hash:    %s\n", p.Hash)
	if capturePayload {
		fmt.Fprintf(out, "  Payload: %s\n", p.Payload)
	}
	return nil
}

func runCaptureList(cmd *cobra.Command, _ []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}
	captures, err := captureService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	if captureJSON {
		out := make([]views.Capture, len(captures))
		for i := range captures {
			out[i] = views.FromCapture(&captures[i])
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}
	if len(captures) == 0 {
		cmd.Println("No captures.")
		return nil
	}
	for i := range captures {
		c := &captures[i]
		cmd.Printf("%s  %-22s  post %s  %s\n", c.ID, c.State, c.PostID, c.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runCaptureShow(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}
	c, err := captureService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if captureJSON {
		return writeJSON(cmd.OutOrStdout(), views.FromCapture(c))
	}
	printCapture(cmd, c)
	return nil
}

func runCaptureDiscard(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}
	if err := captureService.Discard(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("discard failed: %w", err)
	}
	cmd.Printf("Discarded capture %s\n", args[0])
	return nil
}

func printCapture(cmd *cobra.Command, c *domain.Capture) {
	cmd.Printf("Capture %s\n", c.ID)
	cmd.Printf("  Post:      %s\n", c.PostID)
	cmd.Printf("  State:     %s\n", c.State)
	if c.Post.Author != "" {
		cmd.Printf("  Author:    @%s\n", c.Post.Author)
	}
	cmd.Printf("  Text:      %s\n", indentContinuation(c.Post.Text, "             "))
	if c.TextMismatch {
		cmd.Println("  Warning:   fetched text differs from the expected text")
	}
	if c.State == domain.CaptureAwaitingConfirmation {
		cmd.Printf("  Extracted: %s\n", indentContinuation(c.ExtractedText, "             "))
	}
	if c.State == domain.CaptureConfirmed && c.Content != c.Post.Text {
		cmd.Printf("  Content:   %s\n", indentContinuation(c.Content, "             "))
	}
	if cl := c.Classifier; cl != nil {
		cmd.Printf("  Classifier: %s (%.0f%%)\n", cl.Category, cl.Confidence*100)
	}
}
