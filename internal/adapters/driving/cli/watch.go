package cli

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

var (
	watchArchive bool
	watchOnce    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Verify exported records as they appear in a directory",
	Long: `Watch a directory for exported evidence records (*.json) and verify each one
when it is created or changed. Existing files are verified on start.

With --archive, verified records are also imported into the local archive.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchArchive, "archive", false, "import verified records into the local archive")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "verify existing files and exit")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w := newEvidenceWatcher(cmd, watchArchive)
	if err := w.scan(cmd.Context(), dir); err != nil {
		return err
	}
	if watchOnce {
		return w.result()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return w.result()
		case event, ok := <-fsw.Events:
			if !ok {
				return w.result()
			}
			if path, ok := w.handleFsEvent(event); ok {
				w.process(ctx, path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return w.result()
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// evidenceWatcher verifies record files, skipping unchanged content.
type evidenceWatcher struct {
	cmd      *cobra.Command
	archive  bool
	seen     map[string][32]byte
	tampered int
	failed   int
}

func newEvidenceWatcher(cmd *cobra.Command, archive bool) *evidenceWatcher {
	return &evidenceWatcher{cmd: cmd, archive: archive, seen: make(map[string][32]byte)}
}

// handleFsEvent returns the file to verify for a create or write event.
func (w *evidenceWatcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !isRecordFile(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

func isRecordFile(path string) bool {
	base := filepath.Base(path)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), ".json")
}

func (w *evidenceWatcher) scan(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !isRecordFile(e.Name()) {
			continue
		}
		w.process(ctx, filepath.Join(dir, e.Name()))
	}
	return nil
}

// process verifies one file. Files whose content has not changed since the
// last run are skipped, so editors that write twice report once.
func (w *evidenceWatcher) process(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read %s: %v", path, err)
		return
	}
	sum := sha256.Sum256(data)
	if prev, ok := w.seen[path]; ok && prev == sum {
		return
	}
	w.seen[path] = sum

	rec, err := readRecordFile(path)
	if err != nil {
		w.failed++
		w.cmd.PrintErrf("%s: %v\n", path, err)
		return
	}
	insp, err := inspectionService.VerifyRecord(ctx, rec)
	if err != nil {
		w.failed++
		w.cmd.PrintErrf("%s: %v\n", path, err)
		return
	}

	verdict := insp.Verification.Verdict
	if verdict == domain.VerdictTampered {
		w.tampered++
	}
	w.cmd.Printf("%-8s %s (evidence %d)\n", verdict.Label(), filepath.Base(path), rec.ID)

	if w.archive && verdict.IsAuthentic() && archiveService != nil {
		if err := archiveService.Import(ctx, rec); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			w.cmd.PrintErrf("archive %s: %v\n", path, err)
		}
	}
}

func (w *evidenceWatcher) result() error {
	if w.tampered > 0 {
		return ErrTampered
	}
	if w.failed > 0 {
		return fmt.Errorf("%d files could not be verified", w.failed)
	}
	return nil
}
