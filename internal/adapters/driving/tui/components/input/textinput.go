// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/styles"
)

// maxInputLen fits a 0x-prefixed 32-byte reference with room for stray whitespace.
const maxInputLen = 80

// EvidenceInput wraps a bubbles textinput for evidence identifiers.
type EvidenceInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewEvidenceInput creates a new evidence input component.
func NewEvidenceInput(s *styles.Styles) *EvidenceInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Evidence ID or 0x ledger reference"
	ti.Focus()
	ti.CharLimit = maxInputLen
	ti.Width = 66

	return &EvidenceInput{
		textinput: ti,
		styles:    s,
		width:     80,
	}
}

// Init initialises the input.
func (e *EvidenceInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (e *EvidenceInput) Update(msg tea.Msg) (*EvidenceInput, tea.Cmd) {
	var cmd tea.Cmd
	e.textinput, cmd = e.textinput.Update(msg)
	return e, cmd
}

// View renders the input.
func (e *EvidenceInput) View() string {
	label := e.styles.Title.Render("Evidence: ")
	field := e.styles.InputField.Render(e.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (e *EvidenceInput) Value() string {
	return e.textinput.Value()
}

// SetValue sets the input value.
func (e *EvidenceInput) SetValue(value string) {
	e.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (e *EvidenceInput) Focus() tea.Cmd {
	return e.textinput.Focus()
}

// Blur removes focus from the input.
func (e *EvidenceInput) Blur() {
	e.textinput.Blur()
}

// Focused returns whether the input is focused.
func (e *EvidenceInput) Focused() bool {
	return e.textinput.Focused()
}

// SetWidth sets the width of the input.
func (e *EvidenceInput) SetWidth(width int) {
	e.width = width
	// Account for label and padding
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	e.textinput.Width = inputWidth
}

// Width returns the current width.
func (e *EvidenceInput) Width() int {
	return e.width
}

// Reset clears the input.
func (e *EvidenceInput) Reset() {
	e.textinput.Reset()
}
