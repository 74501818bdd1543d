package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/views/archive"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/views/verify"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles

	menuView    *menu.View
	verifyView  *verify.View
	archiveView *archive.View

	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	settings := domain.DefaultAppSettings()
	if ports.Settings != nil {
		if stored, err := ports.Settings.Get(); err == nil {
			settings = *stored
		}
	}
	debounce := ports.Debounce
	if debounce == 0 {
		debounce = settings.Lookup.Debounce
	}
	if debounce == 0 {
		debounce = domain.DefaultAppSettings().Lookup.Debounce
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	menuView := menu.NewView(s, menu.Options{
		Archive: ports.Archive != nil,
		Context: menuContext(&settings),
	})

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menuView,
		verifyView:  verify.NewView(s, km, ports.Inspection, debounce, settings.Ledger.ExplorerLink),
		archiveView: archive.NewView(s, km, ports.Archive),
		currentView: messages.ViewMenu,
	}, nil
}

// menuContext summarises where lookups go and whether the ledger is checked.
func menuContext(settings *domain.AppSettings) string {
	ledger := "ledger checks off"
	if settings.Ledger.IsConfigured() {
		ledger = "ledger checks on"
	}
	return fmt.Sprintf("store: %s  %s", settings.Store.Description(), ledger)
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.verifyView.WithContext(ctx)
	a.archiveView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("chainforensix - Evidence Verification"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewVerify:
			a.verifyView, cmd = a.verifyView.Update(msg)
			a.err = a.verifyView.Err()
		case messages.ViewArchive:
			a.archiveView, cmd = a.archiveView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewVerify:
			a.verifyView.Reset()
			return a, a.verifyView.Init()
		case messages.ViewArchive:
			return a, a.archiveView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.VerifyRequested:
		a.currentView = messages.ViewVerify
		a.verifyView, cmd = a.verifyView.Update(msg)
		return a, cmd

	case messages.InspectionCompleted:
		a.verifyView, cmd = a.verifyView.Update(msg)
		a.err = a.verifyView.Err()
		// Only results the verify view accepted count; stale ones are dropped there.
		if msg.Inspection != nil && a.verifyView.Result() == msg.Inspection {
			a.menuView.Record(msg.Inspection)
		}
		return a, cmd

	case messages.ArchiveLoaded:
		a.archiveView, cmd = a.archiveView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewVerify {
			a.verifyView, cmd = a.verifyView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewVerify:
		a.verifyView, cmd = a.verifyView.Update(msg)
	case messages.ViewArchive:
		a.archiveView, cmd = a.archiveView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewVerify:
		return a.verifyView.View()
	case messages.ViewArchive:
		return a.archiveView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Verify:
  (type)      Evidence ID or 0x ledger reference; looked up once typing pauses
  enter       Look up now
  n           New lookup
  r           Recheck
  esc         Back to Menu

Archive:
  j/k, ↑/↓    Navigate records
  enter       Verify selected record
  r           Reload
  esc         Back to Menu

Verdicts:
  VERIFIED    Content hashes to the anchored value
  TAMPERED    Content differs from what was anchored
  UNKNOWN     Verification could not be attempted

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.verifyView.SetDimensions(width, height)
	a.archiveView.SetDimensions(width, height)
}
