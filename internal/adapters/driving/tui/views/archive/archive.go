// Package archive provides the local evidence archive view for the TUI.
package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
)

// ErrNoArchiveService indicates that no archive service was provided.
var ErrNoArchiveService = errors.New("archive service is not configured")

// listLimit bounds how many records the view loads.
const listLimit = 500

// View lists archived evidence. Selecting a record verifies it.
type View struct {
	styles    *styles.Styles
	list      *list.RecordList
	statusbar *status.Bar
	keymap    *keymap.KeyMap

	archive driving.ArchiveService
	ctx     context.Context

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates an archive view. archive may be nil.
func NewView(s *styles.Styles, km *keymap.KeyMap, archive driving.ArchiveService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	bar := status.NewBar(s, km)
	bar.SetState(status.StateArchive)
	return &View{
		styles:    s,
		list:      list.NewRecordList(s),
		statusbar: bar,
		keymap:    km,
		archive:   archive,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for loading records.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the archive.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.archive == nil {
			return messages.ArchiveLoaded{Err: ErrNoArchiveService}
		}
		records, err := v.archive.List(ctx, listLimit)
		return messages.ArchiveLoaded{Records: records, Err: err}
	}
}

// Update handles messages for the archive view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ArchiveLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetMessage("")
			return v, nil
		}
		v.err = nil
		v.list.SetRecords(msg.Records)
		v.statusbar.SetMessage(fmt.Sprintf("%d records", len(msg.Records)))
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case key.Matches(msg, v.keymap.Reload):
			return v, v.load()
		case key.Matches(msg, v.keymap.Select):
			rec := v.list.SelectedRecord()
			if rec == nil {
				return v, nil
			}
			selected := *rec
			return v, func() tea.Msg {
				return messages.VerifyRequested{Record: &selected}
			}
		}
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the archive view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Evidence archive"), ""}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	} else {
		sections = append(sections, v.list.View())
	}
	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Count returns the number of loaded records.
func (v *View) Count() int {
	return v.list.Count()
}
