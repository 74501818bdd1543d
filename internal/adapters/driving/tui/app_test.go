package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{
		Inspection: &MockInspectionService{},
		Archive: &MockArchiveService{Records: []domain.EvidenceRecord{
			{ID: 5, Content: "archived", HasContent: true},
		}},
		Debounce: time.Millisecond,
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

// update feeds msg to the app and then every message its command produces,
// one level deep, ignoring batches.
func update(app *App, msg tea.Msg) {
	_, cmd := app.Update(msg)
	if cmd == nil {
		return
	}
	next := cmd()
	if next == nil {
		return
	}
	if _, ok := next.(tea.BatchMsg); ok {
		return
	}
	app.Update(next)
}

func TestNewApp_Success(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.True(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingInspectionService)
	assert.Nil(t, app)
}

func TestNewApp_DebounceFromSettings(t *testing.T) {
	s := domain.DefaultAppSettings()
	s.Lookup.Debounce = 2 * time.Second
	s.Ledger.ExplorerURL = "https://scan/tx/"

	app, err := NewApp(&Ports{
		Inspection: &MockInspectionService{},
		Settings:   &MockSettingsService{Settings: &s},
	})

	require.NoError(t, err)
	require.NotNil(t, app)
}

func TestNewApp_SettingsErrorFallsBack(t *testing.T) {
	app, err := NewApp(&Ports{
		Inspection: &MockInspectionService{},
		Settings:   &MockSettingsService{Err: errors.New("unreadable")},
	})

	require.NoError(t, err)
	assert.NotNil(t, app)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(&Ports{Inspection: &MockInspectionService{}})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Inspection: &MockInspectionService{}})
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "chainforensix")
}

func TestApp_CtrlC_Quits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_MenuToVerifyAndLookup(t *testing.T) {
	app := newTestApp(t)

	update(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewVerify, app.CurrentView())

	for _, r := range "42" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	update(app, tea.KeyMsg{Type: tea.KeyEnter})

	view := app.View()
	assert.Contains(t, view, "VERIFIED")
	assert.NoError(t, app.Err())
}

func TestApp_VerifyEscReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	update(app, messages.ViewChanged{View: messages.ViewVerify})

	update(app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ArchiveSelectVerifies(t *testing.T) {
	app := newTestApp(t)
	update(app, messages.ViewChanged{View: messages.ViewArchive})
	require.Equal(t, messages.ViewArchive, app.CurrentView())
	assert.Contains(t, app.View(), "#5")

	// enter emits VerifyRequested, which switches to the verify view
	update(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewVerify, app.CurrentView())

	_, cmd := app.Update(messages.VerifyRequested{Record: &domain.EvidenceRecord{ID: 5}})
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Contains(t, app.View(), "VERIFIED")
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t)
	update(app, messages.ViewChanged{View: messages.ViewHelp})

	assert.Contains(t, app.View(), "TAMPERED")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)
	update(app, messages.ViewChanged{View: messages.ViewVerify})

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Contains(t, app.View(), "boom")
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_MenuTalliesAcceptedResults(t *testing.T) {
	app := newTestApp(t)
	update(app, messages.ViewChanged{View: messages.ViewVerify})
	for _, r := range "42" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	update(app, tea.KeyMsg{Type: tea.KeyEnter})

	// a completion for an outdated lookup is not counted
	app.Update(messages.InspectionCompleted{Seq: 0, Inspection: &domain.Inspection{Status: domain.StatusTampered}})

	update(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, messages.ViewMenu, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "1 verified")
	assert.Contains(t, view, "0 tampered")
	assert.Contains(t, view, "store: Backend API")
}
