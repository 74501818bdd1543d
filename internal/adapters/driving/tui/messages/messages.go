// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// InspectionCompleted carries the result of a lookup back to the model.
// Seq identifies the lookup so stale results can be dropped.
type InspectionCompleted struct {
	Seq        uint64
	Input      string
	Inspection *domain.Inspection
	Err        error
}

// VerifyRequested asks the verify view to check evidence.
// When Record is set it is verified as-is instead of being looked up.
type VerifyRequested struct {
	Input  string
	Record *domain.EvidenceRecord
}

// ArchiveLoaded carries archived records.
type ArchiveLoaded struct {
	Records []domain.EvidenceRecord
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewVerify is the lookup input and verification result view.
	ViewVerify
	// ViewArchive lists locally archived evidence.
	ViewArchive
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewVerify:
		return "verify"
	case ViewArchive:
		return "archive"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
