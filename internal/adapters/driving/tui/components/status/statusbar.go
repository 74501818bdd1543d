// Package status renders the one-line bar at the bottom of the verify and
// archive views: what the lookup is doing on the left, key hints on the right.
package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chainforensix-cli/internal/adapters/driving/tui/styles"
)

// State is the lookup phase shown on the bar.
type State string

// Bar states.
const (
	StateReady   State = "ready"
	StatePending State = "pending"
	StateLookup  State = "lookup"
	StateError   State = "error"
	StateResult  State = "result"
	StateArchive State = "archive"
)

// idleText is shown on the left when a state has no message.
var idleText = map[State]string{
	StateReady:   "Ready",
	StatePending: "Waiting for input to settle...",
	StateLookup:  "Looking up...",
	StateError:   "Error",
	StateResult:  "Ready",
	StateArchive: "Ready",
}

// Bar is a passive component; views drive it through the setters.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	width   int
}

// NewBar creates a status bar in the ready state.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// View renders the bar padded to its width.
func (s *Bar) View() string {
	left := s.left()
	right := s.styles.Muted.Render(hintLine(s.keymap.Hints(s.context())))

	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	gap := max(1, inner-lipgloss.Width(left)-lipgloss.Width(right))
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) left() string {
	switch {
	case s.state == StateError && s.message != "":
		return s.styles.Error.Render("Error: " + s.message)
	case s.state == StateError:
		return s.styles.Error.Render(idleText[StateError])
	case (s.state == StateResult || s.state == StateArchive) && s.message != "":
		return s.styles.Normal.Render(s.message)
	}
	text, ok := idleText[s.state]
	if !ok {
		text = idleText[StateReady]
	}
	return s.styles.Muted.Render(text)
}

func (s *Bar) context() keymap.Context {
	switch s.state {
	case StateResult:
		return keymap.ContextResult
	case StateArchive:
		return keymap.ContextArchive
	default:
		return keymap.ContextTyping
	}
}

func hintLine(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return strings.Join(hints, " | ")
}

// SetState sets the lookup phase.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the lookup phase.
func (s *Bar) State() State { return s.state }

// SetMessage sets the text shown for result, archive and error states.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the current message.
func (s *Bar) Message() string { return s.message }

// SetWidth sets the rendered width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Width returns the rendered width.
func (s *Bar) Width() int { return s.width }

// Clear returns the bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
