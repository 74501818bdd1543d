// Package styles holds the TUI palette and the lipgloss styles built from it.
// Verdict colours are part of the palette so every view renders VERIFIED,
// TAMPERED and the lookup failures the same way.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// Palette is the set of colours the TUI draws with.
type Palette struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Surface   lipgloss.Color
	Panel     lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Frame     lipgloss.Color

	// Verdict colours.
	Verified lipgloss.Color
	Tampered lipgloss.Color
	Caution  lipgloss.Color
}

// DefaultPalette is a dark palette.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:    lipgloss.Color("#7C3AED"),
		Highlight: lipgloss.Color("#06B6D4"),
		Surface:   lipgloss.Color("#1E1E2E"),
		Panel:     lipgloss.Color("#181825"),
		Text:      lipgloss.Color("#CDD6F4"),
		Dim:       lipgloss.Color("#6C7086"),
		Frame:     lipgloss.Color("#45475A"),
		Verified:  lipgloss.Color("#A6E3A1"),
		Tampered:  lipgloss.Color("#F38BA8"),
		Caution:   lipgloss.Color("#F9E2AF"),
	}
}

// Styles are the rendered styles shared by all views.
type Styles struct {
	palette *Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	// Outcome text.
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Badge is the base for status badges; StatusBadge sets the background.
	Badge lipgloss.Style

	// Label pads field names in the result panel.
	Label lipgloss.Style
}

// NewStyles builds styles from p, falling back to DefaultPalette.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		palette: p,

		Title:    fg(p.Accent).Bold(true),
		Subtitle: fg(p.Highlight).Bold(true),
		Normal:   fg(p.Text),
		Muted:    fg(p.Dim),
		Selected: fg(p.Text).Background(p.Accent).Bold(true),
		Help:     fg(p.Dim),

		Success: fg(p.Verified),
		Warning: fg(p.Caution),
		Error:   fg(p.Tampered),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Frame).
			Padding(0, 1),
		StatusBar: fg(p.Dim).Background(p.Panel).Padding(0, 1),

		Badge: fg(p.Surface).Bold(true).Padding(0, 1),
		Label: fg(p.Dim).Width(12),
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the colours these styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// StatusBadge renders an inspection status as a coloured badge, e.g. NOT FOUND.
func (s *Styles) StatusBadge(status domain.InspectionStatus) string {
	label := strings.ToUpper(strings.ReplaceAll(string(status), "_", " "))
	return s.Badge.Background(s.StatusColor(status)).Render(label)
}

// StatusColor maps an inspection status to its palette colour.
// Failures that say nothing about integrity are dimmed.
func (s *Styles) StatusColor(status domain.InspectionStatus) lipgloss.Color {
	switch status {
	case domain.StatusVerified:
		return s.palette.Verified
	case domain.StatusTampered:
		return s.palette.Tampered
	case domain.StatusUnknown, domain.StatusNotFound:
		return s.palette.Caution
	default:
		return s.palette.Dim
	}
}

// LedgerStyle returns the text style for a ledger check outcome.
func (s *Styles) LedgerStyle(status domain.LedgerStatus) lipgloss.Style {
	switch status {
	case domain.LedgerConfirmed:
		return s.Success
	case domain.LedgerPending, domain.LedgerUnavailable:
		return s.Warning
	default:
		return s.Error
	}
}
