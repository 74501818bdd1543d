package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func TestDefaultPalette_VerdictColoursDiffer(t *testing.T) {
	p := DefaultPalette()

	assert.NotEqual(t, p.Verified, p.Tampered)
	assert.NotEqual(t, p.Verified, p.Caution)
	assert.NotEqual(t, p.Tampered, p.Caution)
	assert.NotEqual(t, p.Accent, p.Highlight)
}

func TestNewStyles(t *testing.T) {
	custom := DefaultPalette()
	custom.Verified = lipgloss.Color("#00FF00")

	tests := []struct {
		name    string
		palette *Palette
		want    lipgloss.Color
	}{
		{"custom palette", custom, lipgloss.Color("#00FF00")},
		{"nil falls back to default", nil, DefaultPalette().Verified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStyles(tt.palette)

			require.NotNil(t, s.Palette())
			assert.Equal(t, tt.want, s.Palette().Verified)
			assert.Equal(t, lipgloss.TerminalColor(tt.want), s.Success.GetForeground())
		})
	}
}

func TestDefaultStyles_Initialised(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title":      s.Title,
		"Subtitle":   s.Subtitle,
		"Normal":     s.Normal,
		"Muted":      s.Muted,
		"Selected":   s.Selected,
		"Help":       s.Help,
		"Success":    s.Success,
		"Warning":    s.Warning,
		"Error":      s.Error,
		"InputField": s.InputField,
		"StatusBar":  s.StatusBar,
		"Badge":      s.Badge,
		"Label":      s.Label,
	} {
		assert.NotEqual(t, lipgloss.Style{}, style, name)
		assert.Contains(t, style.Render("text"), "text", name)
	}
	assert.True(t, s.Title.GetBold())
}

func TestStyles_StatusBadge(t *testing.T) {
	s := DefaultStyles()

	tests := []struct {
		status domain.InspectionStatus
		label  string
	}{
		{domain.StatusVerified, "VERIFIED"},
		{domain.StatusTampered, "TAMPERED"},
		{domain.StatusNotFound, "NOT FOUND"},
		{domain.StatusInvalidInput, "INVALID INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Contains(t, s.StatusBadge(tt.status), tt.label)
		})
	}
}

func TestStyles_StatusColor(t *testing.T) {
	s := DefaultStyles()
	p := s.Palette()

	tests := []struct {
		status domain.InspectionStatus
		want   lipgloss.Color
	}{
		{domain.StatusVerified, p.Verified},
		{domain.StatusTampered, p.Tampered},
		{domain.StatusUnknown, p.Caution},
		{domain.StatusNotFound, p.Caution},
		{domain.StatusUnauthorized, p.Dim},
		{domain.StatusUnavailable, p.Dim},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, s.StatusColor(tt.status))
		})
	}
}

func TestStyles_LedgerStyle(t *testing.T) {
	s := DefaultStyles()

	tests := []struct {
		status domain.LedgerStatus
		want   lipgloss.Style
	}{
		{domain.LedgerConfirmed, s.Success},
		{domain.LedgerPending, s.Warning},
		{domain.LedgerUnavailable, s.Warning},
		{domain.LedgerNotIncluded, s.Error},
		{domain.LedgerFailed, s.Error},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want.GetForeground(), s.LedgerStyle(tt.status).GetForeground())
		})
	}
}
