// Package tui provides an interactive terminal user interface for chainforensix.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Inspection resolves and verifies evidence.
	Inspection driving.InspectionService

	// Archive lists locally archived records. Optional.
	Archive driving.ArchiveService

	// Settings supplies the debounce period and explorer URL. Optional.
	Settings driving.SettingsService

	// Debounce overrides the quiet period before a live lookup fires.
	// Zero uses the settings value.
	Debounce time.Duration
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Inspection == nil {
		return ErrMissingInspectionService
	}
	return nil
}
