// Package keymap holds the TUI key bindings and the hint sets shown for
// each screen context.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// Context selects which hints the status bar shows.
type Context int

const (
	// ContextTyping is the verify view while the input has focus.
	ContextTyping Context = iota
	// ContextResult is the verify view once a verdict is shown.
	ContextResult
	// ContextArchive is the archive browser.
	ContextArchive
)

// KeyMap holds every binding the views react to.
type KeyMap struct {
	Quit   key.Binding
	Back   key.Binding
	Verify key.Binding

	// NewLookup clears the result and refocuses the input.
	NewLookup key.Binding
	// Recheck repeats the last lookup against the store.
	Recheck key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Reload key.Binding
}

func bind(help string, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      bind("ctrl+c", "quit", "ctrl+c"),
		Back:      bind("esc", "back", "esc"),
		Verify:    bind("enter", "verify now", "enter"),
		NewLookup: bind("n", "new lookup", "n"),
		Recheck:   bind("r", "recheck", "r"),
		Up:        bind("↑/k", "up", "up", "k"),
		Down:      bind("↓/j", "down", "down", "j"),
		Select:    bind("enter", "verify record", "enter"),
		Reload:    bind("r", "reload", "r"),
	}
}

// Hints returns the bindings advertised in the given context.
func (k *KeyMap) Hints(ctx Context) []key.Binding {
	switch ctx {
	case ContextResult:
		return []key.Binding{k.NewLookup, k.Recheck, k.Back}
	case ContextArchive:
		return []key.Binding{k.Up, k.Down, k.Select, k.Reload, k.Back}
	default:
		return []key.Binding{k.Verify, k.Back}
	}
}
