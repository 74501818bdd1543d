// Package menu is the TUI landing screen. It lists the available views
// and keeps a running tally of verdicts seen in the session.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// Entry is one selectable line on the menu.
type Entry struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// Options controls which entries are offered and the context line.
type Options struct {
	// Archive adds the archive browser entry.
	Archive bool

	// Context is shown under the title, e.g. the active store and ledger.
	Context string
}

// Tally counts inspection outcomes seen during the session.
type Tally struct {
	Verified int
	Tampered int
	Other    int
}

// Total returns the number of recorded inspections.
func (t Tally) Total() int {
	return t.Verified + t.Tampered + t.Other
}

// View is the landing menu.
type View struct {
	styles  *styles.Styles
	entries []Entry
	cursor  int
	context string
	tally   Tally

	width  int
	height int
	ready  bool
}

// NewView builds the menu for the given options.
func NewView(s *styles.Styles, opts Options) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	entries := []Entry{
		{Label: "Verify evidence", Hint: "look up an ID or 0x reference", View: messages.ViewVerify},
	}
	if opts.Archive {
		entries = append(entries, Entry{Label: "Browse archive", Hint: "records saved on this machine", View: messages.ViewArchive})
	}
	entries = append(entries,
		Entry{Label: "Help", Hint: "keys and verdicts", View: messages.ViewHelp},
		Entry{Label: "Quit", Quit: true},
	)

	return &View{
		styles:  s,
		entries: entries,
		context: opts.Context,
		width:   80,
		height:  24,
	}
}

// Init implements the view lifecycle; the menu has no startup work.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and window resizes.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "up", "k":
			v.move(-1)
		case "down", "j":
			v.move(1)
		case "home", "g":
			v.cursor = 0
		case "end", "G":
			v.cursor = len(v.entries) - 1
		case "enter":
			return v, v.activate(v.cursor)
		case "q":
			return v, tea.Quit
		default:
			if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(v.entries) {
				v.cursor = n - 1
				return v, v.activate(v.cursor)
			}
		}
	}

	return v, nil
}

func (v *View) move(delta int) {
	v.cursor = max(0, min(len(v.entries)-1, v.cursor+delta))
}

func (v *View) activate(i int) tea.Cmd {
	entry := v.entries[i]
	if entry.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: entry.View}
	}
}

// Record adds an inspection outcome to the session tally.
// Nil inspections are ignored.
func (v *View) Record(insp *domain.Inspection) {
	if insp == nil {
		return
	}
	switch insp.Status {
	case domain.StatusVerified:
		v.tally.Verified++
	case domain.StatusTampered:
		v.tally.Tampered++
	default:
		v.tally.Other++
	}
}

// Tally returns the session tally.
func (v *View) Tally() Tally {
	return v.tally
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("chainforensix"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render("evidence integrity verification"))
	b.WriteString("\n")
	if v.context != "" {
		b.WriteString(v.styles.Muted.Render(v.context))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, e := range v.entries {
		label := fmt.Sprintf("%d  %s", i+1, e.Label)
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render("> " + label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + label))
		}
		if e.Hint != "" {
			b.WriteString("  ")
			b.WriteString(v.styles.Muted.Render(e.Hint))
		}
		b.WriteString("\n")
	}

	if v.tally.Total() > 0 {
		b.WriteString("\n")
		b.WriteString(v.renderTally())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("j/k move  1-" + strconv.Itoa(len(v.entries)) + " jump  enter open  q quit"))

	return b.String()
}

func (v *View) renderTally() string {
	parts := []string{
		v.styles.Success.Render(fmt.Sprintf("%d verified", v.tally.Verified)),
		v.styles.Error.Render(fmt.Sprintf("%d tampered", v.tally.Tampered)),
	}
	if v.tally.Other > 0 {
		parts = append(parts, v.styles.Warning.Render(fmt.Sprintf("%d unresolved", v.tally.Other)))
	}
	return "This session: " + strings.Join(parts, ", ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the index under the cursor.
func (v *View) Selected() int {
	return v.cursor
}

// Entries returns the menu entries in display order.
func (v *View) Entries() []Entry {
	return v.entries
}
