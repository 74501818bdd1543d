package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
		want    bool
	}{
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, km.Back, true},
		{"enter verifies", tea.KeyMsg{Type: tea.KeyEnter}, km.Verify, true},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, km.Select, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit, true},
		{"q does not quit", runeKey('q'), km.Quit, false},
		{"k moves up", runeKey('k'), km.Up, true},
		{"arrow moves down", tea.KeyMsg{Type: tea.KeyDown}, km.Down, true},
		{"n starts a new lookup", runeKey('n'), km.NewLookup, true},
		{"r rechecks", runeKey('r'), km.Recheck, true},
		{"r reloads", runeKey('r'), km.Reload, true},
		{"x is unbound", runeKey('x'), km.Recheck, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestKeyMap_Hints(t *testing.T) {
	km := DefaultKeyMap()

	descs := func(bindings []key.Binding) []string {
		out := make([]string, 0, len(bindings))
		for _, b := range bindings {
			out = append(out, b.Help().Desc)
		}
		return out
	}

	assert.Equal(t, []string{"verify now", "back"}, descs(km.Hints(ContextTyping)))
	assert.Equal(t, []string{"new lookup", "recheck", "back"}, descs(km.Hints(ContextResult)))
	assert.Equal(t, []string{"up", "down", "verify record", "reload", "back"}, descs(km.Hints(ContextArchive)))
}
