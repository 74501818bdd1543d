// Package verify provides the evidence lookup and verdict view for the TUI.
//
// Lookups fire while the operator types, once the input has been quiet for
// the debounce period. Only the result for the latest input is shown.
package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chainforensix-cli/internal/core/services"
)

// View is the verify view with input, verdict panel, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.EvidenceInput
	statusbar *status.Bar

	inspection   driving.InspectionService
	debouncer    *services.Debouncer[*domain.Inspection]
	explorerLink func(ref string) string
	ctx          context.Context

	width      int
	height     int
	ready      bool
	focusInput bool

	// seq identifies the latest lookup; older completions are dropped.
	seq       uint64
	lastInput string
	result    *domain.Inspection
	err       error
}

// NewView creates a verify view. explorerLink may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	inspection driving.InspectionService,
	debounce time.Duration,
	explorerLink func(ref string) string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:       s,
		keymap:       km,
		input:        input.NewEvidenceInput(s),
		statusbar:    status.NewBar(s, km),
		inspection:   inspection,
		explorerLink: explorerLink,
		ctx:          context.Background(),
		width:        80,
		height:       24,
		focusInput:   true,
	}
	v.debouncer = services.NewDebouncer(debounce, v.inspect)
	return v
}

// WithContext sets the context for lookups.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the verify view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.InspectionCompleted:
		v.handleCompleted(msg)
		return v, nil

	case messages.VerifyRequested:
		if msg.Record != nil {
			return v, v.verifyRecord(msg.Record)
		}
		v.input.SetValue(msg.Input)
		return v, v.lookupNow(msg.Input)

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keymap.Back) {
		v.debouncer.Cancel()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if !v.focusInput {
		switch {
		case key.Matches(msg, v.keymap.NewLookup):
			v.Reset()
			return v, v.input.Focus()
		case key.Matches(msg, v.keymap.Recheck):
			if v.lastInput != "" {
				return v, v.lookupNow(v.lastInput)
			}
		}
		return v, nil
	}

	if key.Matches(msg, v.keymap.Verify) {
		value := strings.TrimSpace(v.input.Value())
		if value == "" {
			return v, nil
		}
		return v, v.lookupNow(value)
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	after := strings.TrimSpace(v.input.Value())
	if after == strings.TrimSpace(before) {
		return v, cmd
	}
	if after == "" {
		v.seq++
		v.debouncer.Cancel()
		v.clearResult()
		return v, cmd
	}
	return v, tea.Batch(cmd, v.lookupDebounced(after))
}

// lookupDebounced schedules a lookup that fires once input settles.
func (v *View) lookupDebounced(value string) tea.Cmd {
	v.seq++
	seq := v.seq
	v.statusbar.SetState(status.StatePending)
	ctx := v.ctx
	return func() tea.Msg {
		insp, err := v.debouncer.Do(ctx, value)
		if errors.Is(err, domain.ErrSuperseded) {
			return nil
		}
		return messages.InspectionCompleted{Seq: seq, Input: value, Inspection: insp, Err: err}
	}
}

// lookupNow supersedes any pending lookup and runs one immediately.
func (v *View) lookupNow(value string) tea.Cmd {
	v.debouncer.Cancel()
	v.seq++
	seq := v.seq
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetState(status.StateLookup)
	ctx := v.ctx
	return func() tea.Msg {
		insp, err := v.inspect(ctx, value)
		return messages.InspectionCompleted{Seq: seq, Input: value, Inspection: insp, Err: err}
	}
}

func (v *View) verifyRecord(rec *domain.EvidenceRecord) tea.Cmd {
	v.debouncer.Cancel()
	v.seq++
	seq := v.seq
	v.focusInput = false
	v.input.Blur()
	v.input.SetValue(fmt.Sprintf("%d", rec.ID))
	v.statusbar.SetState(status.StateLookup)
	ctx := v.ctx
	return func() tea.Msg {
		if v.inspection == nil {
			return messages.InspectionCompleted{Seq: seq, Err: ErrNoInspectionService}
		}
		insp, err := v.inspection.VerifyRecord(ctx, rec)
		return messages.InspectionCompleted{Seq: seq, Input: fmt.Sprintf("%d", rec.ID), Inspection: insp, Err: err}
	}
}

func (v *View) inspect(ctx context.Context, value string) (*domain.Inspection, error) {
	if v.inspection == nil {
		return nil, ErrNoInspectionService
	}
	return v.inspection.Inspect(ctx, value)
}

func (v *View) handleCompleted(msg messages.InspectionCompleted) {
	if msg.Seq != v.seq {
		return
	}
	v.lastInput = msg.Input
	if msg.Err != nil {
		v.result = nil
		v.setError(msg.Err)
		return
	}
	v.err = nil
	v.result = msg.Inspection
	v.statusbar.SetState(status.StateResult)
	if msg.Inspection != nil {
		v.statusbar.SetMessage(statusLabel(msg.Inspection.Status))
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) clearResult() {
	v.result = nil
	v.err = nil
	v.statusbar.Clear()
}

// View renders the verify view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Verify evidence"), "", v.input.View(), "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.result != nil:
		sections = append(sections, v.renderInspection(v.result))
	default:
		sections = append(sections, v.styles.Muted.Render("Type an evidence ID or a 0x-prefixed ledger reference."))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderInspection(in *domain.Inspection) string {
	lines := []string{v.styles.StatusBadge(in.Status)}

	if in.Err != nil {
		lines = append(lines, v.field("Error", in.Err.Error()))
		return strings.Join(lines, "\n")
	}
	if ver := in.Verification; ver != nil {
		lines = append(lines, v.field("Reason", ver.Reason))
		if ver.CalculatedHash != "" {
			lines = append(lines, v.field("Calculated", ver.CalculatedHash))
		}
		if ver.AnchoredHash != "" {
			lines = append(lines, v.field("Anchored", ver.AnchoredHash))
		}
	}
	if r := in.Record; r != nil {
		lines = append(lines, "")
		if r.Author != "" {
			lines = append(lines, v.field("Author", "@"+r.Author))
		}
		if !r.CreatedAt.IsZero() {
			lines = append(lines, v.field("Created", r.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST")))
		}
		if r.HasContent {
			content := lipgloss.NewStyle().Width(v.contentWidth()).Render(r.Content)
			lines = append(lines, v.field("Content", content))
		} else {
			lines = append(lines, v.field("Content", v.styles.Warning.Render("(missing)")))
		}
		for i, m := range r.MediaReferences {
			lines = append(lines, v.field(fmt.Sprintf("Media %d", i+1), m))
		}
		if c := r.Classifier; c != nil {
			style := v.styles.Normal
			if c.IsFlagged() {
				style = v.styles.Warning
			}
			lines = append(lines, v.field("Classifier", style.Render(fmt.Sprintf("%s (%.0f%%)", c.Category, c.Confidence*100))))
		}
		if r.LedgerReference != "" {
			lines = append(lines, v.field("Ledger ref", r.LedgerReference))
			if v.explorerLink != nil {
				if link := v.explorerLink(r.LedgerReference); link != "" {
					lines = append(lines, v.field("Explorer", link))
				}
			}
		}
	}
	if l := in.Ledger; l != nil {
		text := string(l.Status)
		if l.BlockNumber > 0 {
			text += fmt.Sprintf(" (block %d)", l.BlockNumber)
		}
		if l.Detail != "" {
			text += ": " + l.Detail
		}
		lines = append(lines, v.field("On-chain", v.styles.LedgerStyle(l.Status).Render(text)))
	}
	return strings.Join(lines, "\n")
}

func (v *View) field(label, value string) string {
	//nolint:misspell // lipgloss.Top is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Top, v.styles.Label.Render(label), value)
}

func (v *View) contentWidth() int {
	w := v.width - 14
	if w < 20 {
		w = 20
	}
	return w
}

func statusLabel(s domain.InspectionStatus) string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Reset returns the view to an empty, focused input.
func (v *View) Reset() {
	v.debouncer.Cancel()
	v.seq++
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.lastInput = ""
	v.clearResult()
}

// Input returns the current input value.
func (v *View) Input() string {
	return v.input.Value()
}

// Result returns the displayed inspection, if any.
func (v *View) Result() *domain.Inspection {
	return v.result
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
